package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/pkg/response"
)

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Catalog godoc
// @Summary Request types and priorities
// @Tags system
// @Produce json
// @Success 200 {object} response.DataResponse{data=request.Catalog}
// @Router /catalog [get]
func Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, response.OK(request.GetCatalog()))
}
