// Package migrations brings the database schema up to date with the models.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/domain/admin"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/contact"
	"github.com/luxserv365/concierge/internal/domain/inspection"
	"github.com/luxserv365/concierge/internal/domain/message"
	"github.com/luxserv365/concierge/internal/domain/photo"
	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/internal/domain/request"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&admin.User{},
		&property.Property{},
		&request.ServiceRequest{},
		&contact.Submission{},
		&message.OwnerMessage{},
		&inspection.Report{},
		&photo.PropertyPhoto{},
		&audit.AuditLog{},
	}
}

func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
