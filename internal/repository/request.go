package repository

import (
	"strings"
	"time"

	"github.com/luxserv365/concierge/internal/domain/request"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=request.go -destination=mock/request.go -package=mock

type RequestRepo interface {
	Create(r *request.ServiceRequest) error
	GetByID(id string) (request.ServiceRequest, error)
	GetByIDForUpdate(id string) (request.ServiceRequest, error)
	GetByConfirmation(number string) (request.ServiceRequest, error)
	List(filter request.Filter) ([]request.ServiceRequest, int64, error)
	ListAll() ([]request.ServiceRequest, error)
	Save(r *request.ServiceRequest) error
	Stats(since time.Time) (request.Stats, error)
	WithTx(tx *gorm.DB) RequestRepo
}

type DBRequestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) *DBRequestRepo {
	return &DBRequestRepo{
		db: db,
	}
}

func (r *DBRequestRepo) Create(req *request.ServiceRequest) error {
	return r.db.Create(req).Error
}

func (r *DBRequestRepo) GetByID(id string) (request.ServiceRequest, error) {
	var req request.ServiceRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	return req, err
}

func (r *DBRequestRepo) GetByIDForUpdate(id string) (request.ServiceRequest, error) {
	var req request.ServiceRequest
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&req).Error
	return req, err
}

func (r *DBRequestRepo) GetByConfirmation(number string) (request.ServiceRequest, error) {
	var req request.ServiceRequest
	err := r.db.Where("confirmation_number = ?", strings.ToUpper(strings.TrimSpace(number))).First(&req).Error
	return req, err
}

func (r *DBRequestRepo) List(filter request.Filter) ([]request.ServiceRequest, int64, error) {
	f := filter.Normalize()
	q := r.db.Model(&request.ServiceRequest{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.RequestType != "" {
		q = q.Where("request_type = ?", f.RequestType)
	}
	if f.Search != "" {
		like := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		q = q.Where(
			"LOWER(guest_name) LIKE ? OR LOWER(guest_email) LIKE ? OR LOWER(property_address) LIKE ? "+
				"OR LOWER(message) LIKE ? OR LOWER(confirmation_number) LIKE ? OR LOWER(COALESCE(unit_number, '')) LIKE ?",
			like, like, like, like, like, like,
		)
	}

	base := q.Session(&gorm.Session{})
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []request.ServiceRequest
	err := base.Order("created_at DESC, id DESC").
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *DBRequestRepo) ListAll() ([]request.ServiceRequest, error) {
	var items []request.ServiceRequest
	err := r.db.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *DBRequestRepo) Save(req *request.ServiceRequest) error {
	return r.db.Save(req).Error
}

func (r *DBRequestRepo) Stats(since time.Time) (request.Stats, error) {
	stats := request.Stats{
		ByStatus: map[request.Status]int64{},
		ByType:   map[request.RequestType]int64{},
	}
	model := r.db.Model(&request.ServiceRequest{})

	if err := model.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := model.Session(&gorm.Session{}).Where("priority = ?", request.PriorityUrgent).Count(&stats.Urgent).Error; err != nil {
		return stats, err
	}
	if err := model.Session(&gorm.Session{}).Where("created_at >= ?", since).Count(&stats.Recent).Error; err != nil {
		return stats, err
	}

	var byStatus []struct {
		Status request.Status
		Total  int64
	}
	if err := model.Session(&gorm.Session{}).Select("status, COUNT(*) AS total").Group("status").Scan(&byStatus).Error; err != nil {
		return stats, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Status] = row.Total
	}

	var byType []struct {
		RequestType request.RequestType
		Total       int64
	}
	if err := model.Session(&gorm.Session{}).Select("request_type, COUNT(*) AS total").Group("request_type").Scan(&byType).Error; err != nil {
		return stats, err
	}
	for _, row := range byType {
		stats.ByType[row.RequestType] = row.Total
	}
	return stats, nil
}

func (r *DBRequestRepo) WithTx(tx *gorm.DB) RequestRepo {
	if tx == nil {
		return r
	}
	return &DBRequestRepo{
		db: tx,
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
