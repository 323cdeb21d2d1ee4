package repository

import (
	"time"

	"github.com/luxserv365/concierge/internal/domain/audit"
	"gorm.io/gorm"
)

type AuditRepo interface {
	Record(entry *audit.AuditLog) error
	Find(q audit.Query) ([]audit.AuditLog, error)
	PurgeBefore(cutoff time.Time) (int64, error)
	WithTx(tx *gorm.DB) AuditRepo
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *DBAuditRepo {
	return &DBAuditRepo{db: db}
}

func (r *DBAuditRepo) Record(entry *audit.AuditLog) error {
	return r.db.Create(entry).Error
}

// Find returns matching entries, newest first.
func (r *DBAuditRepo) Find(q audit.Query) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	err := r.db.Model(&audit.AuditLog{}).
		Scopes(auditFilters(q), paginate(q.Limit, q.Offset)).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

func (r *DBAuditRepo) PurgeBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&audit.AuditLog{})
	return res.RowsAffected, res.Error
}

func (r *DBAuditRepo) WithTx(tx *gorm.DB) AuditRepo {
	if tx == nil {
		return r
	}
	return &DBAuditRepo{db: tx}
}

func auditFilters(q audit.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Actor != "" {
			db = db.Where("actor = ?", q.Actor)
		}
		if q.Resource != "" {
			db = db.Where("resource_type = ?", q.Resource)
		}
		if q.Action != "" {
			db = db.Where("action = ?", q.Action)
		}
		if !q.From.IsZero() {
			db = db.Where("created_at >= ?", q.From)
		}
		if !q.To.IsZero() {
			db = db.Where("created_at <= ?", q.To)
		}
		return db
	}
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}
