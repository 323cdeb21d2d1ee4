package repository

import (
	"strings"

	"github.com/luxserv365/concierge/internal/domain/message"
	"gorm.io/gorm"
)

//go:generate mockgen -source=message.go -destination=mock/message.go -package=mock

type MessageRepo interface {
	Create(msg *message.OwnerMessage) error
	GetByID(id string) (message.OwnerMessage, error)
	List() ([]message.OwnerMessage, error)
	ListByOwner(email string) ([]message.OwnerMessage, error)
	Save(msg *message.OwnerMessage) error
	WithTx(tx *gorm.DB) MessageRepo
}

type DBMessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *DBMessageRepo {
	return &DBMessageRepo{db: db}
}

func (r *DBMessageRepo) Create(msg *message.OwnerMessage) error {
	return r.db.Create(msg).Error
}

func (r *DBMessageRepo) GetByID(id string) (message.OwnerMessage, error) {
	var m message.OwnerMessage
	err := r.db.Where("id = ?", id).First(&m).Error
	return m, err
}

func (r *DBMessageRepo) List() ([]message.OwnerMessage, error) {
	var items []message.OwnerMessage
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *DBMessageRepo) ListByOwner(email string) ([]message.OwnerMessage, error) {
	var items []message.OwnerMessage
	err := r.db.Where("owner_email = ?", strings.ToLower(email)).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *DBMessageRepo) Save(msg *message.OwnerMessage) error {
	return r.db.Save(msg).Error
}

func (r *DBMessageRepo) WithTx(tx *gorm.DB) MessageRepo {
	if tx == nil {
		return r
	}
	return &DBMessageRepo{db: tx}
}
