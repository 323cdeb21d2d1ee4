package application

import (
	"time"

	"github.com/luxserv365/concierge/internal/notify"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/storage"
)

// Options carries the collaborators and limits shared by the services.
type Options struct {
	Store          storage.Store
	Events         *notify.Dispatcher
	Mailer         notify.Mailer
	ReplyTo        string
	MaxUploadBytes int64
	MaxGuestPhotos int
	AdminTokenTTL  time.Duration
	OwnerTokenTTL  time.Duration
	Now            func() time.Time
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

type Services struct {
	Audit        *AuditService
	Auth         *AuthService
	Contact      *ContactService
	GuestRequest *GuestRequestService
	Inspection   *InspectionService
	Message      *MessageService
	Photo        *PhotoService
	Property     *PropertyService
	RequestAdmin *RequestAdminService
}

func New(repos *repository.Repos, opts Options) *Services {
	return &Services{
		Audit:        NewAuditService(repos, opts),
		Auth:         NewAuthService(repos, opts),
		Contact:      NewContactService(repos, opts),
		GuestRequest: NewGuestRequestService(repos, opts),
		Inspection:   NewInspectionService(repos, opts),
		Message:      NewMessageService(repos, opts),
		Photo:        NewPhotoService(repos, opts),
		Property:     NewPropertyService(repos, opts),
		RequestAdmin: NewRequestAdminService(repos, opts),
	}
}
