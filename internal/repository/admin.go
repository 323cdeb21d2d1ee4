package repository

import (
	"github.com/luxserv365/concierge/internal/domain/admin"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admin.go -destination=mock/admin.go -package=mock

type AdminRepo interface {
	GetByUsername(username string) (admin.User, error)
	Save(u *admin.User) error
	WithTx(tx *gorm.DB) AdminRepo
}

type DBAdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *DBAdminRepo {
	return &DBAdminRepo{db: db}
}

func (r *DBAdminRepo) GetByUsername(username string) (admin.User, error) {
	var u admin.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBAdminRepo) Save(u *admin.User) error {
	return r.db.Save(u).Error
}

func (r *DBAdminRepo) WithTx(tx *gorm.DB) AdminRepo {
	if tx == nil {
		return r
	}
	return &DBAdminRepo{db: tx}
}
