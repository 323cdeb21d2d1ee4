package repository

import (
	"github.com/luxserv365/concierge/internal/domain/contact"
	"gorm.io/gorm"
)

//go:generate mockgen -source=contact.go -destination=mock/contact.go -package=mock

type ContactRepo interface {
	Create(s *contact.Submission) error
	List() ([]contact.Submission, error)
	WithTx(tx *gorm.DB) ContactRepo
}

type DBContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *DBContactRepo {
	return &DBContactRepo{db: db}
}

func (r *DBContactRepo) Create(s *contact.Submission) error {
	return r.db.Create(s).Error
}

func (r *DBContactRepo) List() ([]contact.Submission, error) {
	var items []contact.Submission
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *DBContactRepo) WithTx(tx *gorm.DB) ContactRepo {
	if tx == nil {
		return r
	}
	return &DBContactRepo{db: tx}
}
