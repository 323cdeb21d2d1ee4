package contact

import (
	"strings"
	"time"
)

const StatusNew = "new"

// Submission is a lead captured by the public contact form.
type Submission struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Email             string    `gorm:"size:254;not null;index" json:"email"`
	Phone             *string   `gorm:"size:32" json:"phone"`
	PropertyAddress   *string   `gorm:"size:200" json:"propertyAddress"`
	CurrentlyManaging *string   `gorm:"size:100" json:"currentlyManaging"`
	Message           *string   `gorm:"type:text" json:"message"`
	Status            string    `gorm:"size:20;not null;default:new" json:"status"`
	CreatedAt         time.Time `gorm:"<-:create;index" json:"createdAt"`
}

func (Submission) TableName() string {
	return "contact_submissions"
}

type CreateContactDTO struct {
	Name              string  `json:"name" binding:"required,notblank,max=100"`
	Email             string  `json:"email" binding:"required,email,max=254"`
	Phone             *string `json:"phone" binding:"omitempty,phone_digits,max=32"`
	PropertyAddress   *string `json:"propertyAddress" binding:"omitempty,max=200"`
	CurrentlyManaging *string `json:"currentlyManaging" binding:"omitempty,max=100"`
	Message           *string `json:"message" binding:"omitempty,max=1000"`
}

var FieldLabels = map[string]string{
	"Name":              "name",
	"Email":             "email",
	"Phone":             "phone number",
	"PropertyAddress":   "property address",
	"CurrentlyManaging": "currently managing",
	"Message":           "message",
}

func (d *CreateContactDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = trimOptional(d.Phone)
	d.PropertyAddress = trimOptional(d.PropertyAddress)
	d.CurrentlyManaging = trimOptional(d.CurrentlyManaging)
	if d.Message != nil && strings.TrimSpace(*d.Message) == "" {
		d.Message = nil
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
