package repository

import (
	"strings"

	"github.com/luxserv365/concierge/internal/domain/inspection"
	"gorm.io/gorm"
)

type InspectionRepo interface {
	Create(rep *inspection.Report) error
	ListByOwner(email string) ([]inspection.Report, error)
	WithTx(tx *gorm.DB) InspectionRepo
}

type DBInspectionRepo struct {
	db *gorm.DB
}

func NewInspectionRepo(db *gorm.DB) *DBInspectionRepo {
	return &DBInspectionRepo{db: db}
}

func (r *DBInspectionRepo) Create(rep *inspection.Report) error {
	return r.db.Create(rep).Error
}

func (r *DBInspectionRepo) ListByOwner(email string) ([]inspection.Report, error) {
	var items []inspection.Report
	err := r.db.Where("owner_email = ?", strings.ToLower(email)).
		Order("inspection_date DESC, created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *DBInspectionRepo) WithTx(tx *gorm.DB) InspectionRepo {
	if tx == nil {
		return r
	}
	return &DBInspectionRepo{db: tx}
}
