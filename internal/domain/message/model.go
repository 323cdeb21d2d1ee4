package message

import (
	"strings"
	"time"
)

const (
	StatusPending = "pending"
	StatusRead    = "read"
)

// OwnerMessage is a note sent by a property owner to the concierge team.
type OwnerMessage struct {
	ID              string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Subject         string     `gorm:"size:200;not null" json:"subject"`
	Message         string     `gorm:"type:text;not null" json:"message"`
	Priority        string     `gorm:"size:10;not null;default:normal" json:"priority"`
	OwnerEmail      string     `gorm:"size:254;not null;index" json:"ownerEmail"`
	OwnerName       string     `gorm:"size:100;not null" json:"ownerName"`
	PropertyAddress string     `gorm:"size:200;not null" json:"propertyAddress"`
	Status          string     `gorm:"size:20;not null;default:pending" json:"status"`
	ReadAt          *time.Time `json:"readAt"`
	CreatedAt       time.Time  `gorm:"<-:create;index" json:"createdAt"`
}

func (OwnerMessage) TableName() string {
	return "owner_messages"
}

type CreateMessageDTO struct {
	Subject         string `json:"subject" binding:"required,notblank,max=200"`
	Message         string `json:"message" binding:"required,notblank,max=2000"`
	Priority        string `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	OwnerEmail      string `json:"ownerEmail" binding:"required,email,max=254"`
	OwnerName       string `json:"ownerName" binding:"required,notblank,max=100"`
	PropertyAddress string `json:"propertyAddress" binding:"required,notblank,max=200"`
}

var FieldLabels = map[string]string{
	"Subject":         "subject",
	"Message":         "message",
	"Priority":        "priority",
	"OwnerEmail":      "owner email",
	"OwnerName":       "owner name",
	"PropertyAddress": "property address",
}

func (d *CreateMessageDTO) Normalize() {
	d.Subject = strings.TrimSpace(d.Subject)
	d.OwnerEmail = strings.ToLower(strings.TrimSpace(d.OwnerEmail))
	d.OwnerName = strings.TrimSpace(d.OwnerName)
	d.PropertyAddress = strings.TrimSpace(d.PropertyAddress)
	if d.Priority == "" {
		d.Priority = "normal"
	}
}
