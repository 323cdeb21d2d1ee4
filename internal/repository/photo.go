package repository

import (
	"strings"

	"github.com/luxserv365/concierge/internal/domain/photo"
	"gorm.io/gorm"
)

type PhotoRepo interface {
	CreateBatch(photos []photo.PropertyPhoto) error
	ListByOwner(email string) ([]photo.PropertyPhoto, error)
	WithTx(tx *gorm.DB) PhotoRepo
}

type DBPhotoRepo struct {
	db *gorm.DB
}

func NewPhotoRepo(db *gorm.DB) *DBPhotoRepo {
	return &DBPhotoRepo{db: db}
}

func (r *DBPhotoRepo) CreateBatch(photos []photo.PropertyPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.Create(&photos).Error
}

func (r *DBPhotoRepo) ListByOwner(email string) ([]photo.PropertyPhoto, error) {
	var items []photo.PropertyPhoto
	err := r.db.Where("owner_email = ?", strings.ToLower(email)).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *DBPhotoRepo) WithTx(tx *gorm.DB) PhotoRepo {
	if tx == nil {
		return r
	}
	return &DBPhotoRepo{db: tx}
}
