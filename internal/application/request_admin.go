package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/notify"
	"github.com/luxserv365/concierge/internal/repository"
)

const recentWindow = 7 * 24 * time.Hour

// RequestAdminService backs the admin dashboard: filtering, updates, bulk
// updates, replies to guests and analytics.
type RequestAdminService struct {
	Repos   *repository.Repos
	Events  *notify.Dispatcher
	Mailer  notify.Mailer
	ReplyTo string

	now func() time.Time
}

func NewRequestAdminService(repos *repository.Repos, opts Options) *RequestAdminService {
	mailer := opts.Mailer
	if mailer == nil {
		mailer = notify.LogMailer{}
	}
	return &RequestAdminService{
		Repos:   repos,
		Events:  opts.Events,
		Mailer:  mailer,
		ReplyTo: opts.ReplyTo,
		now:     opts.clock(),
	}
}

func (s *RequestAdminService) List(filter request.Filter) (request.Page, error) {
	filter = filter.Normalize()
	items, total, err := s.Repos.Request.List(filter)
	if err != nil {
		return request.Page{}, err
	}
	if items == nil {
		items = []request.ServiceRequest{}
	}
	return request.Page{Requests: items, Pagination: request.NewPagination(filter, total)}, nil
}

func (s *RequestAdminService) Get(id string) (request.ServiceRequest, error) {
	r, err := s.Repos.Request.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.ServiceRequest{}, ErrRequestNotFound
		}
		return request.ServiceRequest{}, err
	}
	return r, nil
}

func checkUpdate(input request.UpdateRequestDTO) error {
	if input.Status != nil && !input.Status.Valid() {
		return ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Update applies input to one request. It returns the request before and
// after the change; when nothing changed both are equal and nothing is saved.
func (s *RequestAdminService) Update(id string, input request.UpdateRequestDTO, actor string) (request.ServiceRequest, request.ServiceRequest, error) {
	if input.Empty() {
		return request.ServiceRequest{}, request.ServiceRequest{}, ErrNoChanges
	}
	if err := checkUpdate(input); err != nil {
		return request.ServiceRequest{}, request.ServiceRequest{}, err
	}

	before, after, changed, err := s.apply(id, input, actor)
	if err != nil {
		return request.ServiceRequest{}, request.ServiceRequest{}, err
	}
	if changed {
		s.Events.Go(notify.NewEvent(notify.EventRequestUpdated, after, actor, after.UpdatedAt))
	}
	return before, after, nil
}

func (s *RequestAdminService) apply(id string, input request.UpdateRequestDTO, actor string) (before, after request.ServiceRequest, changed bool, err error) {
	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		r, err := tx.Request.GetByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		before = r.Clone()
		if !input.Apply(&r) {
			after = r
			return nil
		}
		changed = true
		r.LastUpdatedBy = &actor
		r.UpdatedAt = s.now().UTC()
		if err := tx.Request.Save(&r); err != nil {
			return err
		}
		after = r
		return nil
	})
	return before, after, changed, err
}

// BulkUpdate applies one action to many requests. Each request is updated in
// its own transaction; ids that fail are reported and do not stop the rest.
func (s *RequestAdminService) BulkUpdate(input request.BulkUpdateDTO, actor string) (request.BulkResult, error) {
	ids := input.UniqueIDs()
	if len(ids) == 0 {
		return request.BulkResult{}, invalid("request ids are required")
	}
	upd := input.Update()
	if upd.Empty() {
		return request.BulkResult{}, ErrBulkNothingToApply
	}
	if err := checkUpdate(upd); err != nil {
		return request.BulkResult{}, err
	}

	result := request.BulkResult{TotalRequests: len(ids), FailedUpdates: []request.FailedUpdate{}}
	for _, id := range ids {
		_, after, changed, err := s.apply(strings.TrimSpace(id), upd, actor)
		if err != nil {
			result.FailedUpdates = append(result.FailedUpdates, request.FailedUpdate{ID: id, Error: bulkError(err)})
			continue
		}
		result.UpdatedCount++
		if changed {
			s.Events.Go(notify.NewEvent(notify.EventRequestUpdated, after, actor, after.UpdatedAt))
		}
	}
	return result, nil
}

func bulkError(err error) string {
	if errors.Is(err, ErrRequestNotFound) {
		return "request not found"
	}
	return err.Error()
}

// Reply e-mails the guest once. A transport failure is returned as
// ErrMailDelivery and is not retried.
func (s *RequestAdminService) Reply(ctx context.Context, id string, input request.ReplyDTO, actor string) (request.ReplyReceipt, error) {
	r, err := s.Get(id)
	if err != nil {
		return request.ReplyReceipt{}, err
	}
	subject := strings.TrimSpace(input.Subject)
	err = s.Mailer.Send(ctx, notify.Mail{
		To:      []string{r.GuestEmail},
		Subject: subject,
		Text:    input.Message,
		ReplyTo: s.ReplyTo,
	})
	if err != nil {
		return request.ReplyReceipt{}, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	sentAt := s.now().UTC()
	s.Events.Go(notify.NewEvent(notify.EventRequestReplied, r, actor, sentAt))
	return request.ReplyReceipt{RequestID: r.ID, SentTo: r.GuestEmail, Subject: subject, SentAt: sentAt}, nil
}

// Analytics counts requests by status and type; "recent" covers the last
// seven days.
func (s *RequestAdminService) Analytics() (request.Analytics, error) {
	stats, err := s.Repos.Request.Stats(s.now().Add(-recentWindow))
	if err != nil {
		return request.Analytics{}, err
	}
	return request.BuildAnalytics(stats), nil
}
