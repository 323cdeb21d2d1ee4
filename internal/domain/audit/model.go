package audit

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Action is what was done to a back-office record.
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionBulkUpdate Action = "bulk_update"
	ActionReply      Action = "reply"
	ActionMarkRead   Action = "mark_read"
)

// Resource names the kind of record an entry is about.
type Resource string

const (
	ResourceGuestRequest  Resource = "guest_request"
	ResourceProperty      Resource = "property"
	ResourcePropertyPhoto Resource = "property_photo"
	ResourceInspection    Resource = "inspection_report"
	ResourceOwnerMessage  Resource = "owner_message"
)

type AuditLog struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor        string         `gorm:"size:254;index" json:"actor"`
	Action       Action         `gorm:"size:50;not null;index" json:"action"`
	ResourceType Resource       `gorm:"size:50;not null;index" json:"resource_type"`
	ResourceID   string         `gorm:"size:64;not null" json:"resource_id"`
	OldData      datatypes.JSON `gorm:"type:jsonb" json:"old_data,omitempty"`
	NewData      datatypes.JSON `gorm:"type:jsonb" json:"new_data,omitempty"`
	IPAddress    string         `gorm:"size:64" json:"ip_address"`
	UserAgent    string         `gorm:"type:text" json:"user_agent"`
	Description  string         `gorm:"type:text" json:"description"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Change is one mutation made through the admin or owner portal.
type Change struct {
	Action     Action
	Resource   Resource
	ResourceID string
	Before     any
	After      any
	Summary    string
}

// Origin identifies who made a change and from where.
type Origin struct {
	Actor     string
	IP        string
	UserAgent string
}

// Entry turns a change into a log row. Snapshots that cannot be encoded are
// left empty and reported through the returned error; the row is still usable.
func (ch Change) Entry(o Origin) (*AuditLog, error) {
	before, errBefore := snapshot(ch.Before)
	after, errAfter := snapshot(ch.After)
	entry := &AuditLog{
		Actor:        o.Actor,
		Action:       ch.Action,
		ResourceType: ch.Resource,
		ResourceID:   ch.ResourceID,
		OldData:      before,
		NewData:      after,
		IPAddress:    o.IP,
		UserAgent:    o.UserAgent,
		Description:  ch.Summary,
	}
	if errBefore != nil {
		return entry, errBefore
	}
	return entry, errAfter
}

func snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// Query filters the audit trail. Zero fields do not filter.
type Query struct {
	Actor    string
	Resource Resource
	Action   Action
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// Matches reports whether l passes every filter in q except paging.
func (q Query) Matches(l AuditLog) bool {
	switch {
	case q.Actor != "" && l.Actor != q.Actor:
		return false
	case q.Resource != "" && l.ResourceType != q.Resource:
		return false
	case q.Action != "" && l.Action != q.Action:
		return false
	case !q.From.IsZero() && l.CreatedAt.Before(q.From):
		return false
	case !q.To.IsZero() && l.CreatedAt.After(q.To):
		return false
	}
	return true
}
