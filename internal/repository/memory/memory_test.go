package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRequest(id string, created time.Time) *request.ServiceRequest {
	return &request.ServiceRequest{
		ID:                 id,
		ConfirmationNumber: "LUX-" + id,
		GuestName:          "Guest " + id,
		Status:             request.StatusPending,
		Priority:           request.PriorityNormal,
		RequestType:        request.TypeGeneralInquiry,
		CreatedAt:          created,
	}
}

func TestRequestRepo_StoredCopiesAreIsolated(t *testing.T) {
	repos := NewRepositories()
	req := newRequest("A1", time.Now())
	req.InternalNotes = []string{"one"}
	require.NoError(t, repos.Request.Create(req))

	req.InternalNotes[0] = "mutated"
	got, err := repos.Request.GetByID("A1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.InternalNotes[0])

	got.InternalNotes = append(got.InternalNotes, "two")
	again, _ := repos.Request.GetByID("A1")
	assert.Len(t, again.InternalNotes, 1)
}

func TestRequestRepo_DuplicateRejected(t *testing.T) {
	repos := NewRepositories()
	require.NoError(t, repos.Request.Create(newRequest("A1", time.Now())))
	assert.ErrorIs(t, repos.Request.Create(newRequest("A1", time.Now())), gorm.ErrDuplicatedKey)
}

func TestRequestRepo_SaveKeepsCreatedAt(t *testing.T) {
	repos := NewRepositories()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Request.Create(newRequest("A1", created)))

	changed := newRequest("A1", time.Now())
	changed.Status = request.StatusCompleted
	require.NoError(t, repos.Request.Save(changed))

	got, _ := repos.Request.GetByID("A1")
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, request.StatusCompleted, got.Status)
}

func TestRequestRepo_ListAndStats(t *testing.T) {
	repos := NewRepositories()
	now := time.Now()
	for i := 0; i < 5; i++ {
		r := newRequest(fmt.Sprintf("R%d", i), now.Add(-time.Duration(i)*48*time.Hour))
		if i%2 == 0 {
			r.Priority = request.PriorityUrgent
		}
		require.NoError(t, repos.Request.Create(r))
	}

	items, total, err := repos.Request.List(request.Filter{Priority: request.PriorityUrgent, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)
	assert.Equal(t, "R0", items[0].ID)

	stats, err := repos.Request.Stats(now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(3), stats.Urgent)
	assert.Equal(t, int64(4), stats.Recent)
	assert.Equal(t, int64(5), stats.ByStatus[request.StatusPending])

	got, err := repos.Request.GetByConfirmation(" lux-r3 ")
	require.NoError(t, err)
	assert.Equal(t, "R3", got.ID)
}

func TestPropertyRepo_ListSearchAndDelete(t *testing.T) {
	repos := NewRepositories()
	base := time.Now()
	require.NoError(t, repos.Property.Create(&property.Property{ID: "p1", OwnerEmail: "kim@example.com", OwnerName: "Kim", PropertyAddress: "1 Gulf Blvd", CreatedAt: base}))
	require.NoError(t, repos.Property.Create(&property.Property{ID: "p2", OwnerEmail: "lee@example.com", OwnerName: "Lee", PropertyAddress: "9 Palm Way", CreatedAt: base.Add(time.Minute)}))

	items, total, err := repos.Property.List(property.ListQuery{Search: "PALM"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "p2", items[0].ID)

	require.NoError(t, repos.Property.Delete("p1"))
	assert.ErrorIs(t, repos.Property.Delete("p1"), gorm.ErrRecordNotFound)
}

func TestAuditRepo_RetentionAndQuery(t *testing.T) {
	repos := NewRepositories()
	old := &audit.AuditLog{Action: audit.ActionUpdate, ResourceType: audit.ResourceGuestRequest, CreatedAt: time.Now().AddDate(0, 0, -40)}
	fresh := &audit.AuditLog{Action: audit.ActionReply, ResourceType: audit.ResourceGuestRequest}
	require.NoError(t, repos.Audit.Record(old))
	require.NoError(t, repos.Audit.Record(fresh))

	logs, err := repos.Audit.Find(audit.Query{Action: audit.ActionReply})
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	removed, err := repos.Audit.PurgeBefore(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	logs, _ = repos.Audit.Find(audit.Query{})
	assert.Len(t, logs, 1)
}

func TestExecTx_WithoutDatabaseRunsDirectly(t *testing.T) {
	repos := NewRepositories()
	called := false
	err := repos.ExecTx(func(tx *repository.Repos) error {
		called = true
		assert.Same(t, repos.Request, tx.Request)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestExecTx_SerializesReadModifyWrite(t *testing.T) {
	repos := NewRepositories()
	require.NoError(t, repos.Request.Create(newRequest("A1", time.Now())))

	const writers = 200
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repos.ExecTx(func(tx *repository.Repos) error {
				r, err := tx.Request.GetByIDForUpdate("A1")
				if err != nil {
					return err
				}
				r.AppendNote(fmt.Sprintf("note %d", i))
				return tx.Request.Save(&r)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repos.Request.GetByID("A1")
	require.NoError(t, err)
	assert.Len(t, got.InternalNotes, writers)
}
