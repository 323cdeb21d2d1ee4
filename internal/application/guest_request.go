package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/notify"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/storage"
	"github.com/luxserv365/concierge/pkg/validation"
)

const confirmationAttempts = 3

// GuestRequestService handles the public side of service requests.
type GuestRequestService struct {
	Repos     *repository.Repos
	Events    *notify.Dispatcher
	MaxPhotos int

	files fileStore
	now   func() time.Time
	newID func() string
}

func NewGuestRequestService(repos *repository.Repos, opts Options) *GuestRequestService {
	return &GuestRequestService{
		Repos:     repos,
		Events:    opts.Events,
		MaxPhotos: opts.MaxGuestPhotos,
		files:     fileStore{store: opts.Store, maxBytes: opts.MaxUploadBytes},
		now:       opts.clock(),
		newID:     uuid.NewString,
	}
}

// NewConfirmationNumber returns "LUX-" followed by eight upper-case hex digits.
func NewConfirmationNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return request.ConfirmationPrefix + strings.ToUpper(raw[:8])
}

// Submit validates and stores a guest request together with its photos, then
// notifies staff in the background.
func (s *GuestRequestService) Submit(ctx context.Context, input request.CreateRequestDTO, photos []storage.Upload) (request.ServiceRequest, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		if errors.Is(err, request.ErrCheckOutBeforeCheckIn) {
			return request.ServiceRequest{}, invalid(err.Error())
		}
		return request.ServiceRequest{}, invalid(validation.Message(err, request.FieldLabels))
	}
	if s.MaxPhotos > 0 && len(photos) > s.MaxPhotos {
		return request.ServiceRequest{}, fmt.Errorf("%w: at most %d photos per request", ErrTooManyPhotos, s.MaxPhotos)
	}

	stored, err := s.files.saveAll(ctx, FolderGuestPhotos, photos, acceptImages)
	if err != nil {
		return request.ServiceRequest{}, err
	}

	r := input.ToModel(s.now().UTC())
	r.ID = s.newID()
	for _, f := range stored {
		r.Photos = append(r.Photos, request.PhotoRef{
			Filename:     f.Filename,
			URL:          "/api/" + FolderGuestPhotos + "/" + f.Filename,
			OriginalName: f.OriginalName,
		})
	}

	if err := s.create(&r); err != nil {
		s.files.remove(ctx, stored)
		return request.ServiceRequest{}, err
	}

	s.Events.Go(notify.NewEvent(notify.EventRequestCreated, r, "", r.CreatedAt))
	return r, nil
}

func (s *GuestRequestService) create(r *request.ServiceRequest) error {
	for i := 0; i < confirmationAttempts; i++ {
		r.ConfirmationNumber = NewConfirmationNumber()
		err := s.Repos.Request.Create(r)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return ErrConfirmationClash
}

func (s *GuestRequestService) Lookup(confirmation string) (request.ServiceRequest, error) {
	r, err := s.Repos.Request.GetByConfirmation(strings.TrimSpace(confirmation))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.ServiceRequest{}, ErrRequestNotFound
		}
		return request.ServiceRequest{}, err
	}
	return r, nil
}

// ListAll returns every request, newest first.
func (s *GuestRequestService) ListAll() ([]request.ServiceRequest, error) {
	return s.Repos.Request.ListAll()
}

func (s *GuestRequestService) OpenPhoto(ctx context.Context, filename string) (io.ReadCloser, storage.Object, error) {
	return s.files.open(ctx, FolderGuestPhotos, filename)
}
