package repository

import (
	"strings"

	"github.com/luxserv365/concierge/internal/domain/property"
	"gorm.io/gorm"
)

//go:generate mockgen -source=property.go -destination=mock/property.go -package=mock

type PropertyRepo interface {
	Create(p *property.Property) error
	GetByID(id string) (property.Property, error)
	List(q property.ListQuery) ([]property.Property, int64, error)
	ListByOwner(email string) ([]property.Property, error)
	Save(p *property.Property) error
	Delete(id string) error
	WithTx(tx *gorm.DB) PropertyRepo
}

type DBPropertyRepo struct {
	db *gorm.DB
}

func NewPropertyRepo(db *gorm.DB) *DBPropertyRepo {
	return &DBPropertyRepo{db: db}
}

func (r *DBPropertyRepo) Create(p *property.Property) error {
	return r.db.Create(p).Error
}

func (r *DBPropertyRepo) GetByID(id string) (property.Property, error) {
	var p property.Property
	err := r.db.Where("id = ?", id).First(&p).Error
	return p, err
}

func (r *DBPropertyRepo) List(lq property.ListQuery) ([]property.Property, int64, error) {
	lq = lq.Normalize()
	q := r.db.Model(&property.Property{})
	if lq.Search != "" {
		like := "%" + escapeLike(strings.ToLower(lq.Search)) + "%"
		q = q.Where("LOWER(owner_email) LIKE ? OR LOWER(owner_name) LIKE ? OR LOWER(property_address) LIKE ?", like, like, like)
	}

	base := q.Session(&gorm.Session{})
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []property.Property
	err := base.Order("created_at DESC").
		Offset((lq.Page - 1) * lq.Limit).
		Limit(lq.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *DBPropertyRepo) ListByOwner(email string) ([]property.Property, error) {
	var items []property.Property
	err := r.db.Where("owner_email = ?", strings.ToLower(strings.TrimSpace(email))).Order("property_address").Find(&items).Error
	return items, err
}

func (r *DBPropertyRepo) Save(p *property.Property) error {
	return r.db.Save(p).Error
}

func (r *DBPropertyRepo) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&property.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBPropertyRepo) WithTx(tx *gorm.DB) PropertyRepo {
	if tx == nil {
		return r
	}
	return &DBPropertyRepo{db: tx}
}
