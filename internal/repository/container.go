package repository

import (
	"sync"

	"gorm.io/gorm"
)

type Repos struct {
	Request    RequestRepo
	Contact    ContactRepo
	Message    MessageRepo
	Inspection InspectionRepo
	Photo      PhotoRepo
	Property   PropertyRepo
	Admin      AdminRepo
	Audit      AuditRepo

	db     *gorm.DB
	serial *sync.Mutex
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Request:    NewRequestRepo(db),
		Contact:    NewContactRepo(db),
		Message:    NewMessageRepo(db),
		Inspection: NewInspectionRepo(db),
		Photo:      NewPhotoRepo(db),
		Property:   NewPropertyRepo(db),
		Admin:      NewAdminRepo(db),
		Audit:      NewAuditRepo(db),
		db:         db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Request:    r.Request.WithTx(tx),
		Contact:    r.Contact.WithTx(tx),
		Message:    r.Message.WithTx(tx),
		Inspection: r.Inspection.WithTx(tx),
		Photo:      r.Photo.WithTx(tx),
		Property:   r.Property.WithTx(tx),
		Admin:      r.Admin.WithTx(tx),
		Audit:      r.Audit.WithTx(tx),
		db:         tx,
	}
}

// Serialized makes ExecTx run callbacks one at a time when there is no
// database to provide row locks. The in-memory driver uses it.
func (r *Repos) Serialized() *Repos {
	r.serial = &sync.Mutex{}
	return r
}

// ExecTx runs fn inside a transaction. Repos without a database (in-memory
// or mocked) run fn directly, under the serial lock when one is set.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		if r.serial == nil {
			return fn(r)
		}
		r.serial.Lock()
		defer r.serial.Unlock()
		inner := *r
		inner.serial = nil
		return fn(&inner)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
