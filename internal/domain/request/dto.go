package request

import (
	"errors"
	"strings"
	"time"

	"github.com/luxserv365/concierge/pkg/validation"
)

var ErrCheckOutBeforeCheckIn = errors.New("check-out date must not be before check-in date")

// FieldLabels maps DTO fields to the names used in validation messages.
var FieldLabels = map[string]string{
	"GuestName":       "guest name",
	"GuestEmail":      "email",
	"GuestPhone":      "phone number",
	"NumberOfGuests":  "number of guests",
	"PropertyAddress": "property address",
	"UnitNumber":      "unit number",
	"CheckInDate":     "check-in date",
	"CheckOutDate":    "check-out date",
	"RequestType":     "request type",
	"Priority":        "priority",
	"Status":          "status",
	"Message":         "message",
	"InternalNote":    "internal note",
	"RequestIDs":      "request ids",
	"Action":          "action",
	"Subject":         "subject",
}

type CreateRequestDTO struct {
	GuestName       string      `json:"guestName" form:"guestName" binding:"required,notblank,max=100"`
	GuestEmail      string      `json:"guestEmail" form:"guestEmail" binding:"required,email,max=254"`
	GuestPhone      *string     `json:"guestPhone" form:"guestPhone" binding:"omitempty,phone_digits,max=32"`
	NumberOfGuests  *int        `json:"numberOfGuests" form:"numberOfGuests" binding:"omitempty,gte=0,lte=50"`
	PropertyAddress string      `json:"propertyAddress" form:"propertyAddress" binding:"required,notblank,max=200"`
	UnitNumber      *string     `json:"unitNumber" form:"unitNumber" binding:"omitempty,max=20"`
	CheckInDate     *string     `json:"checkInDate" form:"checkInDate" binding:"omitempty,civil_date"`
	CheckOutDate    *string     `json:"checkOutDate" form:"checkOutDate" binding:"omitempty,civil_date"`
	RequestType     RequestType `json:"requestType" form:"requestType" binding:"required,oneof=property-issues housekeeping-requests pre-arrival-grocery-stocking concierge-services beach-recreation-gear transportation-assistance celebration-services pet-services emergency-urgent general-inquiry"`
	Priority        Priority    `json:"priority" form:"priority" binding:"omitempty,oneof=normal high urgent"`
	Message         string      `json:"message" form:"message" binding:"required,notblank,max=2000"`
	Source          Source      `json:"source" form:"source" binding:"omitempty,oneof=guest owner"`
}

// Normalize turns blank optional fields into absent ones and fills defaults.
// The message body is kept verbatim.
func (d *CreateRequestDTO) Normalize() {
	d.GuestName = strings.TrimSpace(d.GuestName)
	d.GuestEmail = strings.TrimSpace(d.GuestEmail)
	d.PropertyAddress = strings.TrimSpace(d.PropertyAddress)
	d.GuestPhone = trimOptional(d.GuestPhone)
	d.UnitNumber = trimOptional(d.UnitNumber)
	d.CheckInDate = trimOptional(d.CheckInDate)
	d.CheckOutDate = trimOptional(d.CheckOutDate)
	if d.NumberOfGuests != nil && *d.NumberOfGuests == 0 {
		d.NumberOfGuests = nil
	}
	if d.Priority == "" {
		d.Priority = PriorityNormal
	}
	if d.Source == "" {
		d.Source = SourceGuest
	}
}

func (d CreateRequestDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	if !d.RequestType.Valid() || !d.Priority.Valid() {
		return errors.New("unknown request type or priority")
	}
	if d.CheckInDate != nil && d.CheckOutDate != nil && *d.CheckOutDate < *d.CheckInDate {
		return ErrCheckOutBeforeCheckIn
	}
	return nil
}

// ToModel builds a pending request; identifiers are assigned by the caller.
func (d CreateRequestDTO) ToModel(now time.Time) ServiceRequest {
	return ServiceRequest{
		GuestName:       d.GuestName,
		GuestEmail:      d.GuestEmail,
		GuestPhone:      d.GuestPhone,
		NumberOfGuests:  d.NumberOfGuests,
		PropertyAddress: d.PropertyAddress,
		UnitNumber:      d.UnitNumber,
		CheckInDate:     d.CheckInDate,
		CheckOutDate:    d.CheckOutDate,
		RequestType:     d.RequestType,
		Priority:        d.Priority,
		Status:          StatusPending,
		Message:         d.Message,
		Source:          d.Source,
		Photos:          []PhotoRef{},
		InternalNotes:   []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type UpdateRequestDTO struct {
	Status       *Status   `json:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority     *Priority `json:"priority" binding:"omitempty,oneof=normal high urgent"`
	InternalNote *string   `json:"internalNote" binding:"omitempty,max=2000"`
}

func (d UpdateRequestDTO) Empty() bool {
	return d.Status == nil && d.Priority == nil && (d.InternalNote == nil || strings.TrimSpace(*d.InternalNote) == "")
}

// Apply mutates r and reports whether anything changed.
func (d UpdateRequestDTO) Apply(r *ServiceRequest) bool {
	changed := false
	if d.Status != nil && *d.Status != r.Status {
		r.Status = *d.Status
		changed = true
	}
	if d.Priority != nil && *d.Priority != r.Priority {
		r.Priority = *d.Priority
		changed = true
	}
	if d.InternalNote != nil && r.AppendNote(*d.InternalNote) {
		changed = true
	}
	return changed
}

type BulkAction string

const (
	BulkComplete BulkAction = "complete"
	BulkCancel   BulkAction = "cancel"
	BulkUpdate   BulkAction = "update"
)

type BulkUpdateDTO struct {
	RequestIDs   []string   `json:"requestIds" binding:"required,min=1,max=100,dive,required"`
	Action       BulkAction `json:"action" binding:"required,oneof=complete cancel update"`
	Status       *Status    `json:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	InternalNote *string    `json:"internalNote" binding:"omitempty,max=2000"`
}

// Update resolves the bulk action into the per-request update it stands for.
func (d BulkUpdateDTO) Update() UpdateRequestDTO {
	u := UpdateRequestDTO{Status: d.Status, InternalNote: d.InternalNote}
	switch d.Action {
	case BulkComplete:
		s := StatusCompleted
		u.Status = &s
	case BulkCancel:
		s := StatusCancelled
		u.Status = &s
	}
	return u
}

// UniqueIDs drops blanks and repeats, keeping first-seen order. Ids are
// compared trimmed but returned exactly as submitted.
func (d BulkUpdateDTO) UniqueIDs() []string {
	seen := make(map[string]struct{}, len(d.RequestIDs))
	out := make([]string, 0, len(d.RequestIDs))
	for _, id := range d.RequestIDs {
		key := strings.TrimSpace(id)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, id)
	}
	return out
}

type FailedUpdate struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type BulkResult struct {
	UpdatedCount  int            `json:"updated_count"`
	TotalRequests int            `json:"total_requests"`
	FailedUpdates []FailedUpdate `json:"failed_updates"`
}

type ReplyDTO struct {
	Subject string `json:"subject" binding:"required,notblank,max=200"`
	Message string `json:"message" binding:"required,notblank,max=5000"`
}

type ReplyReceipt struct {
	RequestID string    `json:"requestId"`
	SentTo    string    `json:"sentTo"`
	Subject   string    `json:"subject"`
	SentAt    time.Time `json:"sentAt"`
}

type Overview struct {
	TotalRequests     int64 `json:"total_requests"`
	PendingRequests   int64 `json:"pending_requests"`
	CompletedRequests int64 `json:"completed_requests"`
	UrgentRequests    int64 `json:"urgent_requests"`
	RecentRequests    int64 `json:"recent_requests"`
}

type TypeCount struct {
	Type  RequestType `json:"type"`
	Label string      `json:"label"`
	Count int64       `json:"count"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

type Analytics struct {
	Overview        Overview      `json:"overview"`
	RequestTypes    []TypeCount   `json:"request_types"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`
}

// BuildAnalytics lists every catalog type and status, including zero counts.
func BuildAnalytics(s Stats) Analytics {
	a := Analytics{
		Overview: Overview{
			TotalRequests:     s.Total,
			PendingRequests:   s.ByStatus[StatusPending],
			CompletedRequests: s.ByStatus[StatusCompleted],
			UrgentRequests:    s.Urgent,
			RecentRequests:    s.Recent,
		},
	}
	for _, e := range catalog.RequestTypes {
		t := RequestType(e.Key)
		a.RequestTypes = append(a.RequestTypes, TypeCount{Type: t, Label: e.Label, Count: s.ByType[t]})
	}
	for _, e := range catalog.Statuses {
		st := Status(e.Key)
		a.StatusBreakdown = append(a.StatusBreakdown, StatusCount{Status: st, Label: e.Label, Count: s.ByStatus[st]})
	}
	return a
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
