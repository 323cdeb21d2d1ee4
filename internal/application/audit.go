package application

import (
	"time"

	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/repository"
)

const MaxAuditPage = 1000

type AuditService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewAuditService(repos *repository.Repos, opts Options) *AuditService {
	return &AuditService{Repos: repos, now: opts.clock()}
}

// Trail returns the entries matching q, newest first. Limit defaults to 100
// and is capped at MaxAuditPage.
func (s *AuditService) Trail(q audit.Query) ([]audit.AuditLog, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	q.Limit = min(q.Limit, MaxAuditPage)
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return nil, invalid("end_time must not be before start_time")
	}
	return nonNil(s.Repos.Audit.Find(q))
}

// PurgeExpired deletes entries older than retentionDays and reports how many went.
func (s *AuditService) PurgeExpired(retentionDays int) (int64, error) {
	return s.Repos.Audit.PurgeBefore(s.now().AddDate(0, 0, -retentionDays))
}
