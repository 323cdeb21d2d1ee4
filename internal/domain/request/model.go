package request

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type RequestType string

type Priority string

type Status string

type Source string

const (
	TypePropertyIssues  RequestType = "property-issues"
	TypeHousekeeping    RequestType = "housekeeping-requests"
	TypeGroceryStocking RequestType = "pre-arrival-grocery-stocking"
	TypeConcierge       RequestType = "concierge-services"
	TypeBeachGear       RequestType = "beach-recreation-gear"
	TypeTransportation  RequestType = "transportation-assistance"
	TypeCelebration     RequestType = "celebration-services"
	TypePetServices     RequestType = "pet-services"
	TypeEmergencyUrgent RequestType = "emergency-urgent"
	TypeGeneralInquiry  RequestType = "general-inquiry"
)

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

const (
	SourceGuest Source = "guest"
	SourceOwner Source = "owner"
)

const ConfirmationPrefix = "LUX-"

const defaultResponseTime = "24 hours"

func (t RequestType) Valid() bool {
	_, ok := lookup(catalog.RequestTypes, string(t))
	return ok
}

func (t RequestType) Label() string {
	if e, ok := lookup(catalog.RequestTypes, string(t)); ok {
		return e.Label
	}
	return string(t)
}

func (p Priority) Valid() bool {
	_, ok := lookup(catalog.Priorities, string(p))
	return ok
}

// ResponseTime is the expected staff response window shown to guests.
func (p Priority) ResponseTime() string {
	if e, ok := lookup(catalog.Priorities, string(p)); ok {
		return e.ResponseTime
	}
	return defaultResponseTime
}

func (s Status) Valid() bool {
	_, ok := lookup(catalog.Statuses, string(s))
	return ok
}

func (s Status) Label() string {
	if e, ok := lookup(catalog.Statuses, string(s)); ok {
		return e.Label
	}
	return string(s)
}

type PhotoRef struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName,omitempty"`
}

type ServiceRequest struct {
	ID                 string                        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ConfirmationNumber string                        `gorm:"size:16;uniqueIndex;not null" json:"confirmationNumber"`
	GuestName          string                        `gorm:"size:100;not null" json:"guestName"`
	GuestEmail         string                        `gorm:"size:254;not null;index" json:"guestEmail"`
	GuestPhone         *string                       `gorm:"size:32" json:"guestPhone"`
	NumberOfGuests     *int                          `json:"numberOfGuests"`
	PropertyAddress    string                        `gorm:"size:200;not null" json:"propertyAddress"`
	UnitNumber         *string                       `gorm:"size:20" json:"unitNumber"`
	CheckInDate        *string                       `gorm:"size:10" json:"checkInDate"`
	CheckOutDate       *string                       `gorm:"size:10" json:"checkOutDate"`
	RequestType        RequestType                   `gorm:"size:40;not null;index" json:"requestType"`
	Priority           Priority                      `gorm:"size:10;not null;index" json:"priority"`
	Status             Status                        `gorm:"size:20;not null;index" json:"status"`
	Message            string                        `gorm:"type:text;not null" json:"message"`
	Source             Source                        `gorm:"size:10;not null;default:guest" json:"source"`
	Photos             datatypes.JSONSlice[PhotoRef] `json:"photos"`
	InternalNotes      datatypes.JSONSlice[string]   `json:"internalNotes"`
	LastUpdatedBy      *string                       `gorm:"size:100" json:"lastUpdatedBy"`
	CreatedAt          time.Time                     `gorm:"autoCreateTime:false;index;<-:create" json:"createdAt"`
	UpdatedAt          time.Time                     `json:"updatedAt"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}

// Clone returns a copy that shares no slices with r.
func (r ServiceRequest) Clone() ServiceRequest {
	out := r
	out.Photos = append(datatypes.JSONSlice[PhotoRef]{}, r.Photos...)
	out.InternalNotes = append(datatypes.JSONSlice[string]{}, r.InternalNotes...)
	return out
}

// AppendNote adds a trimmed admin note. Blank notes are ignored.
func (r *ServiceRequest) AppendNote(note string) bool {
	note = strings.TrimSpace(note)
	if note == "" {
		return false
	}
	r.InternalNotes = append(r.InternalNotes, note)
	return true
}

func (r ServiceRequest) ResponseTime() string {
	return r.Priority.ResponseTime()
}

// Stats is the aggregate view behind the admin analytics endpoint.
type Stats struct {
	Total    int64
	Urgent   int64
	Recent   int64
	ByStatus map[Status]int64
	ByType   map[RequestType]int64
}
