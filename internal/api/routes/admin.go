package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/api/handlers"
)

// AdminRoutes registers the dashboard endpoints on an already authorised group.
func AdminRoutes(rg *gin.RouterGroup, h *handlers.Handlers) {
	rg.POST("/refresh", h.Auth.Refresh)
	rg.POST("/logout", h.Auth.Logout)

	requests := rg.Group("/guest-requests")
	{
		requests.GET("", h.RequestAdmin.List)
		requests.PUT("/bulk-update", h.RequestAdmin.BulkUpdate)
		requests.PUT("/:id", h.RequestAdmin.Update)
		requests.POST("/:id/reply", h.RequestAdmin.Reply)
	}
	rg.GET("/analytics", h.RequestAdmin.Analytics)

	properties := rg.Group("/properties")
	{
		properties.GET("", h.Property.List)
		properties.POST("", h.Property.Create)
		properties.PUT("/:id", h.Property.Update)
		properties.DELETE("/:id", h.Property.Delete)
	}

	rg.PUT("/messages/:id/read", h.Message.MarkRead)
	rg.GET("/audit-logs", h.Audit.GetAuditLogs)
}
