package request

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixtures() []ServiceRequest {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []ServiceRequest{
		{ID: "1", GuestName: "Ana", PropertyAddress: "1 Beach Rd", Status: StatusPending, Priority: PriorityUrgent, RequestType: TypeEmergencyUrgent, Message: "Leak", CreatedAt: base},
		{ID: "2", GuestName: "Ben", PropertyAddress: "2 Dune Ct", Status: StatusCompleted, Priority: PriorityNormal, RequestType: TypeHousekeeping, Message: "Towels", CreatedAt: base.Add(time.Hour)},
		{ID: "3", GuestName: "Cy", PropertyAddress: "3 Bay Ln", UnitNumber: ptr("B12"), Status: StatusPending, Priority: PriorityHigh, RequestType: TypeConcierge, Message: "Dinner for two", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: -3, Limit: 1000, Search: "  x "}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.Limit)
	assert.Equal(t, "x", f.Search)
	assert.Equal(t, DefaultPageSize, Filter{}.Normalize().Limit)
}

func TestFilter_ApplyStatusExcludesCompleted(t *testing.T) {
	got, p := Filter{Status: StatusPending}.Apply(fixtures())
	assert.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, StatusPending, r.Status)
	}
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, int64(2), p.TotalCount)
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	got, _ := Filter{Search: "DINNER"}.Apply(fixtures())
	assert.Len(t, got, 1)

	got, _ = Filter{Search: "b12"}.Apply(fixtures())
	assert.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestFilter_Pagination(t *testing.T) {
	var all []ServiceRequest
	base := time.Now()
	for i := 0; i < 45; i++ {
		all = append(all, ServiceRequest{ID: fmt.Sprintf("%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	page, p := Filter{Page: 3, Limit: 20}.Apply(all)
	assert.Len(t, page, 5)
	assert.Equal(t, Pagination{CurrentPage: 3, TotalPages: 3, TotalCount: 45, PerPage: 20}, p)
	assert.Equal(t, "04", page[0].ID)

	page, _ = Filter{Page: 9}.Apply(all)
	assert.Empty(t, page)
}

func TestFilter_ApplyDoesNotReorderInput(t *testing.T) {
	in := fixtures()
	Filter{}.Apply(in)
	assert.Equal(t, "1", in[0].ID)
}

func TestNewPagination_Empty(t *testing.T) {
	p := NewPagination(Filter{}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.CurrentPage)
}
