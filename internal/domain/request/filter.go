package request

import (
	"sort"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Filter struct {
	Search      string      `form:"search"`
	Status      Status      `form:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	Priority    Priority    `form:"priority" binding:"omitempty,oneof=normal high urgent"`
	RequestType RequestType `form:"request_type" binding:"omitempty,oneof=property-issues housekeeping-requests pre-arrival-grocery-stocking concierge-services beach-recreation-gear transportation-assistance celebration-services pet-services emergency-urgent general-inquiry"`
	Page        int         `form:"page"`
	Limit       int         `form:"limit"`
}

func (f Filter) Normalize() Filter {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

func (f Filter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.Limit
}

// Matches reports whether r passes every non-empty criterion of f.
func (f Filter) Matches(r ServiceRequest) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if f.RequestType != "" && r.RequestType != f.RequestType {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	fields := []string{r.GuestName, r.GuestEmail, r.PropertyAddress, r.Message, r.ConfirmationNumber}
	if r.UnitNumber != nil {
		fields = append(fields, *r.UnitNumber)
	}
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// Apply filters, orders newest first and slices out the requested page.
func (f Filter) Apply(all []ServiceRequest) ([]ServiceRequest, Pagination) {
	f = f.Normalize()
	matched := make([]ServiceRequest, 0, len(all))
	for _, r := range all {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	SortNewestFirst(matched)

	total := int64(len(matched))
	start := f.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], NewPagination(f, total)
}

func SortNewestFirst(rs []ServiceRequest) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].ID > rs[j].ID
		}
		return rs[i].CreatedAt.After(rs[j].CreatedAt)
	})
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	PerPage     int   `json:"per_page"`
}

func NewPagination(f Filter, total int64) Pagination {
	f = f.Normalize()
	return Pagination{
		CurrentPage: f.Page,
		TotalPages:  int((total + int64(f.Limit) - 1) / int64(f.Limit)),
		TotalCount:  total,
		PerPage:     f.Limit,
	}
}

type Page struct {
	Requests   []ServiceRequest `json:"requests"`
	Pagination Pagination       `json:"pagination"`
}
