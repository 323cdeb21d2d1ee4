package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/luxserv365/concierge/internal/domain/contact"
	"github.com/luxserv365/concierge/internal/repository"
)

type ContactService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewContactService(repos *repository.Repos, opts Options) *ContactService {
	return &ContactService{Repos: repos, now: opts.clock()}
}

func (s *ContactService) Create(input contact.CreateContactDTO) (contact.Submission, error) {
	input.Normalize()
	sub := contact.Submission{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		PropertyAddress:   input.PropertyAddress,
		CurrentlyManaging: input.CurrentlyManaging,
		Message:           input.Message,
		Status:            contact.StatusNew,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.Repos.Contact.Create(&sub); err != nil {
		return contact.Submission{}, err
	}
	return sub, nil
}

func (s *ContactService) List() ([]contact.Submission, error) {
	items, err := s.Repos.Contact.List()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []contact.Submission{}
	}
	return items, nil
}
