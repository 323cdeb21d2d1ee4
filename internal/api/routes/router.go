package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/luxserv365/concierge/internal/api/handlers"
	"github.com/luxserv365/concierge/internal/api/middleware"
	"github.com/luxserv365/concierge/pkg/validation"
)

// NewRouter builds the engine with recovery, request logging, CORS and the
// custom validation tags installed.
func NewRouter(log *slog.Logger, origins []string) (*gin.Engine, error) {
	if err := validation.RegisterGin(); err != nil {
		return nil, err
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.CORSMiddleware(origins))
	return router, nil
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	authMiddleware := middleware.NewAuth()
	jwt := middleware.JWTAuthMiddleware()

	api := r.Group("/api")
	api.GET("/health", handlers.Health)
	api.GET("/catalog", handlers.Catalog)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	contact := api.Group("/contact")
	{
		contact.POST("", h.Contact.Create)
		contact.GET("", jwt, authMiddleware.Admin(), h.Contact.List)
	}

	messages := api.Group("/messages")
	{
		messages.POST("", h.Message.Create)
		messages.GET("", jwt, authMiddleware.Admin(), h.Message.List)
		messages.GET("/owner/:email", jwt, authMiddleware.OwnerOrAdmin("email"), h.Message.ListByOwner)
	}

	inspections := api.Group("/inspections")
	{
		inspections.POST("", jwt, authMiddleware.Admin(), h.Inspection.Create)
		inspections.GET("/owner/:email", jwt, authMiddleware.OwnerOrAdmin("email"), h.Inspection.ListByOwner)
		inspections.GET("/file/:filename", h.Inspection.File)
	}

	photos := api.Group("/photos")
	{
		// owner match is checked against the form body
		photos.POST("/upload", jwt, h.Photo.Upload)
		photos.GET("/owner/:email", jwt, authMiddleware.OwnerOrAdmin("email"), h.Photo.ListByOwner)
		photos.GET("/file/:filename", h.Photo.File)
	}

	guestRequests := api.Group("/guest-requests")
	{
		guestRequests.POST("", h.GuestRequest.Submit)
		guestRequests.GET("", jwt, authMiddleware.Admin(), h.GuestRequest.ListAll)
		guestRequests.GET("/:confirmationNumber", h.GuestRequest.Lookup)
	}
	api.GET("/guest-photos/:filename", h.GuestRequest.Photo)

	owner := api.Group("/owner")
	{
		owner.POST("/login", h.Auth.OwnerLogin)
		owner.GET("/properties", jwt, authMiddleware.Owner(), h.Auth.OwnerProperties)
		owner.POST("/logout", jwt, authMiddleware.Owner(), h.Auth.Logout)
	}

	api.POST("/admin/login", h.Auth.AdminLogin)
	admin := api.Group("/admin")
	admin.Use(jwt, authMiddleware.Admin())
	AdminRoutes(admin, h)

	if h.Live != nil {
		api.GET("/ws/admin/requests", jwt, authMiddleware.Admin(), h.Live.Handler)
	}
}
