package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/repository/memory"
)

func setupAuditService(t *testing.T) *AuditService {
	t.Helper()
	repos := memory.NewRepositories()
	return NewAuditService(repos, Options{Now: func() time.Time { return fixedNow }})
}

func TestAuditService_TrailDefaultsAndCapsLimit(t *testing.T) {
	svc := setupAuditService(t)
	for i := 0; i < 120; i++ {
		require.NoError(t, svc.Repos.Audit.Record(&audit.AuditLog{
			Actor:        "admin",
			Action:       audit.ActionUpdate,
			ResourceType: audit.ResourceGuestRequest,
			ResourceID:   fmt.Sprint(i),
		}))
	}

	logs, err := svc.Trail(audit.Query{})
	require.NoError(t, err)
	assert.Len(t, logs, 100)
	assert.Equal(t, "119", logs[0].ResourceID)

	logs, err = svc.Trail(audit.Query{Limit: 5000})
	require.NoError(t, err)
	assert.Len(t, logs, 120)

	logs, err = svc.Trail(audit.Query{Resource: audit.ResourceProperty})
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestAuditService_TrailRejectsInvertedWindow(t *testing.T) {
	svc := setupAuditService(t)

	_, err := svc.Trail(audit.Query{From: fixedNow, To: fixedNow.Add(-time.Hour)})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuditService_PurgeExpiredUsesClock(t *testing.T) {
	svc := setupAuditService(t)
	require.NoError(t, svc.Repos.Audit.Record(&audit.AuditLog{Action: audit.ActionDelete, CreatedAt: fixedNow.AddDate(0, 0, -31)}))
	require.NoError(t, svc.Repos.Audit.Record(&audit.AuditLog{Action: audit.ActionCreate, CreatedAt: fixedNow.AddDate(0, 0, -29)}))

	n, err := svc.PurgeExpired(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	logs, err := svc.Trail(audit.Query{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionCreate, logs[0].Action)
}

func TestChangeEntry_SkipsNilSnapshots(t *testing.T) {
	entry, err := audit.Change{
		Action:     audit.ActionReply,
		Resource:   audit.ResourceGuestRequest,
		ResourceID: "r1",
		After:      map[string]string{"subject": "Re: towels"},
		Summary:    "Replied to guest",
	}.Entry(audit.Origin{Actor: "admin", IP: "10.0.0.2"})
	require.NoError(t, err)
	assert.Nil(t, entry.OldData)
	assert.JSONEq(t, `{"subject":"Re: towels"}`, string(entry.NewData))
	assert.Equal(t, "10.0.0.2", entry.IPAddress)
	assert.Equal(t, audit.ResourceGuestRequest, entry.ResourceType)
}
