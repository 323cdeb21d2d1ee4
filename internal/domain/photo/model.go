package photo

import (
	"strings"
	"time"
)

const MaxPerUpload = 20

type PropertyPhoto struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerEmail      string    `gorm:"size:254;not null;index" json:"ownerEmail"`
	PropertyAddress string    `gorm:"size:200;not null" json:"propertyAddress"`
	Caption         *string   `gorm:"size:300" json:"caption"`
	FileName        string    `gorm:"size:100;not null;uniqueIndex" json:"fileName"`
	FileURL         string    `gorm:"size:300;not null" json:"fileUrl"`
	OriginalName    string    `gorm:"size:255" json:"originalName"`
	ContentType     string    `gorm:"size:100" json:"contentType"`
	CreatedAt       time.Time `gorm:"<-:create;index" json:"createdAt"`
}

func (PropertyPhoto) TableName() string {
	return "property_photos"
}

type UploadDTO struct {
	OwnerEmail      string  `form:"ownerEmail" binding:"required,email,max=254"`
	PropertyAddress string  `form:"propertyAddress" binding:"required,notblank,max=200"`
	Caption         *string `form:"caption" binding:"omitempty,max=300"`
}

var FieldLabels = map[string]string{
	"OwnerEmail":      "owner email",
	"PropertyAddress": "property address",
	"Caption":         "caption",
}

func (d *UploadDTO) Normalize() {
	d.OwnerEmail = strings.ToLower(strings.TrimSpace(d.OwnerEmail))
	d.PropertyAddress = strings.TrimSpace(d.PropertyAddress)
	if d.Caption != nil && strings.TrimSpace(*d.Caption) == "" {
		d.Caption = nil
	}
}
