package handlers

import (
	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/live"
	"github.com/luxserv365/concierge/internal/repository"
)

type Handlers struct {
	Audit        *AuditHandler
	Auth         *AuthHandler
	Contact      *ContactHandler
	GuestRequest *GuestRequestHandler
	Inspection   *InspectionHandler
	Message      *MessageHandler
	Photo        *PhotoHandler
	Property     *PropertyHandler
	RequestAdmin *RequestAdminHandler
	Live         *live.Hub
}

func New(svc *application.Services, repos *repository.Repos, hub *live.Hub) *Handlers {
	return &Handlers{
		Audit:        NewAuditHandler(svc.Audit),
		Auth:         NewAuthHandler(svc.Auth, svc.Property, repos),
		Contact:      NewContactHandler(svc.Contact),
		GuestRequest: NewGuestRequestHandler(svc.GuestRequest),
		Inspection:   NewInspectionHandler(svc.Inspection, repos),
		Message:      NewMessageHandler(svc.Message, repos),
		Photo:        NewPhotoHandler(svc.Photo, repos),
		Property:     NewPropertyHandler(svc.Property, repos),
		RequestAdmin: NewRequestAdminHandler(svc.RequestAdmin, repos),
		Live:         hub,
	}
}
