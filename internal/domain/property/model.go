package property

import (
	"strings"
	"time"
)

// Property links an owner to the external resources shown in their portal.
type Property struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerEmail      string    `gorm:"size:254;not null;index" json:"ownerEmail"`
	OwnerName       string    `gorm:"size:100;not null" json:"ownerName"`
	PropertyAddress string    `gorm:"size:200;not null" json:"propertyAddress"`
	PropertyType    *string   `gorm:"size:50" json:"propertyType"`
	Notes           *string   `gorm:"type:text" json:"notes"`
	GoogleFormsURL  *string   `gorm:"size:500" json:"googleFormsUrl"`
	GoogleDocsURL   *string   `gorm:"size:500" json:"googleDocsUrl"`
	GooglePhotosURL *string   `gorm:"size:500" json:"googlePhotosUrl"`
	CreatedAt       time.Time `gorm:"<-:create" json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Property) TableName() string {
	return "properties"
}

type CreatePropertyDTO struct {
	OwnerEmail      string  `json:"ownerEmail" binding:"required,email,max=254"`
	OwnerName       string  `json:"ownerName" binding:"required,notblank,max=100"`
	PropertyAddress string  `json:"propertyAddress" binding:"required,notblank,max=200"`
	PropertyType    *string `json:"propertyType" binding:"omitempty,max=50"`
	Notes           *string `json:"notes" binding:"omitempty,max=5000"`
	GoogleFormsURL  *string `json:"googleFormsUrl" binding:"omitempty,url,max=500"`
	GoogleDocsURL   *string `json:"googleDocsUrl" binding:"omitempty,url,max=500"`
	GooglePhotosURL *string `json:"googlePhotosUrl" binding:"omitempty,url,max=500"`
}

type UpdatePropertyDTO struct {
	OwnerEmail      *string `json:"ownerEmail" binding:"omitempty,email,max=254"`
	OwnerName       *string `json:"ownerName" binding:"omitempty,notblank,max=100"`
	PropertyAddress *string `json:"propertyAddress" binding:"omitempty,notblank,max=200"`
	PropertyType    *string `json:"propertyType" binding:"omitempty,max=50"`
	Notes           *string `json:"notes" binding:"omitempty,max=5000"`
	GoogleFormsURL  *string `json:"googleFormsUrl" binding:"omitempty,url,max=500"`
	GoogleDocsURL   *string `json:"googleDocsUrl" binding:"omitempty,url,max=500"`
	GooglePhotosURL *string `json:"googlePhotosUrl" binding:"omitempty,url,max=500"`
}

var FieldLabels = map[string]string{
	"OwnerEmail":      "owner email",
	"OwnerName":       "owner name",
	"PropertyAddress": "property address",
	"PropertyType":    "property type",
	"Notes":           "notes",
	"GoogleFormsURL":  "Google Forms URL",
	"GoogleDocsURL":   "Google Docs URL",
	"GooglePhotosURL": "Google Photos URL",
}

type ListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	return q
}

func (d CreatePropertyDTO) ToModel(now time.Time) Property {
	return Property{
		OwnerEmail:      strings.ToLower(strings.TrimSpace(d.OwnerEmail)),
		OwnerName:       strings.TrimSpace(d.OwnerName),
		PropertyAddress: strings.TrimSpace(d.PropertyAddress),
		PropertyType:    blankToNil(d.PropertyType),
		Notes:           blankToNil(d.Notes),
		GoogleFormsURL:  blankToNil(d.GoogleFormsURL),
		GoogleDocsURL:   blankToNil(d.GoogleDocsURL),
		GooglePhotosURL: blankToNil(d.GooglePhotosURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Apply copies the provided fields onto p. An empty string clears an optional field.
func (d UpdatePropertyDTO) Apply(p *Property) {
	if d.OwnerEmail != nil {
		p.OwnerEmail = strings.ToLower(strings.TrimSpace(*d.OwnerEmail))
	}
	if d.OwnerName != nil {
		p.OwnerName = strings.TrimSpace(*d.OwnerName)
	}
	if d.PropertyAddress != nil {
		p.PropertyAddress = strings.TrimSpace(*d.PropertyAddress)
	}
	if d.PropertyType != nil {
		p.PropertyType = blankToNil(d.PropertyType)
	}
	if d.Notes != nil {
		p.Notes = blankToNil(d.Notes)
	}
	if d.GoogleFormsURL != nil {
		p.GoogleFormsURL = blankToNil(d.GoogleFormsURL)
	}
	if d.GoogleDocsURL != nil {
		p.GoogleDocsURL = blankToNil(d.GoogleDocsURL)
	}
	if d.GooglePhotosURL != nil {
		p.GooglePhotosURL = blankToNil(d.GooglePhotosURL)
	}
}

// SameAddress compares addresses ignoring case and surrounding space.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
