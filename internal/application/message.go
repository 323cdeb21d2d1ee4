package application

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/domain/message"
	"github.com/luxserv365/concierge/internal/repository"
)

// MessageService stores notes that owners send to the concierge team.
type MessageService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewMessageService(repos *repository.Repos, opts Options) *MessageService {
	return &MessageService{Repos: repos, now: opts.clock()}
}

func (s *MessageService) Create(input message.CreateMessageDTO) (message.OwnerMessage, error) {
	input.Normalize()
	m := message.OwnerMessage{
		ID:              uuid.NewString(),
		Subject:         input.Subject,
		Message:         input.Message,
		Priority:        input.Priority,
		OwnerEmail:      input.OwnerEmail,
		OwnerName:       input.OwnerName,
		PropertyAddress: input.PropertyAddress,
		Status:          message.StatusPending,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.Repos.Message.Create(&m); err != nil {
		return message.OwnerMessage{}, err
	}
	return m, nil
}

func (s *MessageService) List() ([]message.OwnerMessage, error) {
	return nonNil(s.Repos.Message.List())
}

func (s *MessageService) ListByOwner(email string) ([]message.OwnerMessage, error) {
	return nonNil(s.Repos.Message.ListByOwner(strings.ToLower(strings.TrimSpace(email))))
}

// MarkRead flags a message as read. Marking it again keeps the first read time.
func (s *MessageService) MarkRead(id string) (message.OwnerMessage, error) {
	var out message.OwnerMessage
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		m, err := tx.Message.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMessageNotFound
			}
			return err
		}
		if m.Status != message.StatusRead {
			now := s.now().UTC()
			m.Status = message.StatusRead
			m.ReadAt = &now
			if err := tx.Message.Save(&m); err != nil {
				return err
			}
		}
		out = m
		return nil
	})
	return out, err
}

func nonNil[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
