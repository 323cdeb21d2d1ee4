package inspection

import (
	"strings"
	"time"
)

type Report struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Notes           *string   `gorm:"type:text" json:"notes"`
	OwnerEmail      string    `gorm:"size:254;not null;index" json:"ownerEmail"`
	PropertyAddress string    `gorm:"size:200;not null" json:"propertyAddress"`
	InspectionDate  string    `gorm:"size:10;not null" json:"inspectionDate"`
	FileName        *string   `gorm:"size:100" json:"fileName"`
	FileURL         *string   `gorm:"size:300" json:"fileUrl"`
	OriginalName    *string   `gorm:"size:255" json:"originalName"`
	ContentType     *string   `gorm:"size:100" json:"contentType"`
	UploadedBy      string    `gorm:"size:100" json:"uploadedBy"`
	CreatedAt       time.Time `gorm:"<-:create;index" json:"createdAt"`
}

func (Report) TableName() string {
	return "inspection_reports"
}

type CreateReportDTO struct {
	Title           string  `form:"title" binding:"required,notblank,max=200"`
	Notes           *string `form:"notes" binding:"omitempty,max=5000"`
	OwnerEmail      string  `form:"ownerEmail" binding:"required,email,max=254"`
	PropertyAddress string  `form:"propertyAddress" binding:"required,notblank,max=200"`
	InspectionDate  string  `form:"inspectionDate" binding:"required,civil_date"`
}

var FieldLabels = map[string]string{
	"Title":           "title",
	"Notes":           "notes",
	"OwnerEmail":      "owner email",
	"PropertyAddress": "property address",
	"InspectionDate":  "inspection date",
}

func (d *CreateReportDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.OwnerEmail = strings.ToLower(strings.TrimSpace(d.OwnerEmail))
	d.PropertyAddress = strings.TrimSpace(d.PropertyAddress)
	if d.Notes != nil && strings.TrimSpace(*d.Notes) == "" {
		d.Notes = nil
	}
}
