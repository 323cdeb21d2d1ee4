package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/notify"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/internal/repository/memory"
	"github.com/luxserv365/concierge/internal/repository/mock"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type stubMailer struct {
	sent []notify.Mail
	err  error
}

func (m *stubMailer) Send(_ context.Context, mail notify.Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

// --------------------- Setup ---------------------
func setupRequestAdminMocks(t *testing.T) (*RequestAdminService, *mock.MockRequestRepo, *stubMailer) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockRequest := mock.NewMockRequestRepo(ctrl)
	mailer := &stubMailer{}
	repos := &repository.Repos{
		Request: mockRequest,
	}
	svc := NewRequestAdminService(repos, Options{
		Mailer:  mailer,
		ReplyTo: "concierge@luxserv365.com",
		Now:     func() time.Time { return fixedNow },
	})
	return svc, mockRequest, mailer
}

func pendingRequest(id string) request.ServiceRequest {
	return request.ServiceRequest{
		ID:                 id,
		ConfirmationNumber: "LUX-0000000" + id,
		GuestName:          "Guest " + id,
		GuestEmail:         "guest" + id + "@example.com",
		RequestType:        request.TypeHousekeeping,
		Priority:           request.PriorityNormal,
		Status:             request.StatusPending,
		Message:            "fresh towels please",
		InternalNotes:      []string{"first note"},
		CreatedAt:          fixedNow.Add(-time.Hour),
	}
}

func ptr[T any](v T) *T { return &v }

// --------------------- Update ---------------------
func TestUpdate_EmptyInput(t *testing.T) {
	svc, _, _ := setupRequestAdminMocks(t)

	_, _, err := svc.Update("1", request.UpdateRequestDTO{InternalNote: ptr("   ")}, "admin")
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	svc, _, _ := setupRequestAdminMocks(t)

	_, _, err := svc.Update("1", request.UpdateRequestDTO{Status: ptr(request.Status("archived"))}, "admin")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByIDForUpdate("missing").Return(request.ServiceRequest{}, gorm.ErrRecordNotFound)

	_, _, err := svc.Update("missing", request.UpdateRequestDTO{Status: ptr(request.StatusCompleted)}, "admin")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestUpdate_StatusAndNote(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByIDForUpdate("1").Return(pendingRequest("1"), nil)
	mockRequest.EXPECT().Save(gomock.Any()).DoAndReturn(func(r *request.ServiceRequest) error {
		assert.Equal(t, request.StatusInProgress, r.Status)
		assert.Equal(t, []string{"first note", "plumber booked"}, []string(r.InternalNotes))
		return nil
	})

	before, after, err := svc.Update("1", request.UpdateRequestDTO{
		Status:       ptr(request.StatusInProgress),
		InternalNote: ptr("  plumber booked "),
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, before.Status)
	assert.Len(t, before.InternalNotes, 1)
	assert.Equal(t, request.StatusInProgress, after.Status)
	require.NotNil(t, after.LastUpdatedBy)
	assert.Equal(t, "admin", *after.LastUpdatedBy)
	assert.Equal(t, fixedNow, after.UpdatedAt)
}

func TestUpdate_SameStatusIsNoop(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByIDForUpdate("1").Return(pendingRequest("1"), nil)
	mockRequest.EXPECT().Save(gomock.Any()).Times(0)

	_, after, err := svc.Update("1", request.UpdateRequestDTO{Status: ptr(request.StatusPending)}, "admin")
	require.NoError(t, err)
	assert.Equal(t, []string{"first note"}, []string(after.InternalNotes))
	assert.Nil(t, after.LastUpdatedBy)
}

// --------------------- BulkUpdate ---------------------
func TestBulkUpdate_ReportsFailuresPerItem(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByIDForUpdate("1").Return(pendingRequest("1"), nil)
	mockRequest.EXPECT().GetByIDForUpdate("2").Return(request.ServiceRequest{}, gorm.ErrRecordNotFound)
	mockRequest.EXPECT().GetByIDForUpdate("3").Return(pendingRequest("3"), nil)
	mockRequest.EXPECT().Save(gomock.Any()).DoAndReturn(func(r *request.ServiceRequest) error {
		if r.ID == "3" {
			return errors.New("disk full")
		}
		assert.Equal(t, request.StatusCompleted, r.Status)
		return nil
	}).Times(2)

	res, err := svc.BulkUpdate(request.BulkUpdateDTO{
		RequestIDs: []string{"1", "2", "1", "3"},
		Action:     request.BulkComplete,
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalRequests)
	assert.Equal(t, 1, res.UpdatedCount)
	assert.Equal(t, []request.FailedUpdate{
		{ID: "2", Error: "request not found"},
		{ID: "3", Error: "disk full"},
	}, res.FailedUpdates)
}

func TestBulkUpdate_UpdateActionNeedsSomething(t *testing.T) {
	svc, _, _ := setupRequestAdminMocks(t)

	_, err := svc.BulkUpdate(request.BulkUpdateDTO{RequestIDs: []string{"1"}, Action: request.BulkUpdate}, "admin")
	assert.ErrorIs(t, err, ErrBulkNothingToApply)
}

func TestBulkUpdate_NoFailuresIsEmptySlice(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByIDForUpdate("1").Return(pendingRequest("1"), nil)
	mockRequest.EXPECT().Save(gomock.Any()).Return(nil)

	res, err := svc.BulkUpdate(request.BulkUpdateDTO{
		RequestIDs:   []string{"1"},
		Action:       request.BulkUpdate,
		InternalNote: ptr("called guest"),
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatedCount)
	assert.NotNil(t, res.FailedUpdates)
	assert.Empty(t, res.FailedUpdates)
}

// --------------------- Reply ---------------------
func TestReply_SendsMailToGuest(t *testing.T) {
	svc, mockRequest, mailer := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByID("1").Return(pendingRequest("1"), nil)

	receipt, err := svc.Reply(context.Background(), "1", request.ReplyDTO{Subject: " Towels ", Message: "On the way."}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "guest1@example.com", receipt.SentTo)
	assert.Equal(t, "Towels", receipt.Subject)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"guest1@example.com"}, mailer.sent[0].To)
	assert.Equal(t, "concierge@luxserv365.com", mailer.sent[0].ReplyTo)
	assert.Equal(t, "On the way.", mailer.sent[0].Text)
}

func TestReply_TransportFailure(t *testing.T) {
	svc, mockRequest, mailer := setupRequestAdminMocks(t)
	mailer.err = errors.New("connection refused")

	mockRequest.EXPECT().GetByID("1").Return(pendingRequest("1"), nil)

	_, err := svc.Reply(context.Background(), "1", request.ReplyDTO{Subject: "s", Message: "m"}, "admin")
	assert.ErrorIs(t, err, ErrMailDelivery)
}

func TestReply_UnknownRequest(t *testing.T) {
	svc, mockRequest, mailer := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByID("nope").Return(request.ServiceRequest{}, gorm.ErrRecordNotFound)

	_, err := svc.Reply(context.Background(), "nope", request.ReplyDTO{Subject: "s", Message: "m"}, "admin")
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.Empty(t, mailer.sent)
}

// --------------------- List / Analytics ---------------------
func TestList_NormalizesFilter(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().List(request.Filter{Page: 1, Limit: request.MaxPageSize}).Return(nil, int64(0), nil)

	page, err := svc.List(request.Filter{Limit: 500})
	require.NoError(t, err)
	assert.NotNil(t, page.Requests)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestAnalytics_UsesSevenDayWindow(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().Stats(fixedNow.Add(-7*24*time.Hour)).Return(request.Stats{
		Total:    3,
		Urgent:   1,
		Recent:   2,
		ByStatus: map[request.Status]int64{request.StatusPending: 2, request.StatusCompleted: 1},
		ByType:   map[request.RequestType]int64{request.TypeHousekeeping: 3},
	}, nil)

	a, err := svc.Analytics()
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.Overview.TotalRequests)
	assert.Equal(t, int64(2), a.Overview.PendingRequests)
	assert.Equal(t, int64(1), a.Overview.CompletedRequests)
	assert.Equal(t, int64(2), a.Overview.RecentRequests)
	assert.Len(t, a.RequestTypes, len(request.GetCatalog().RequestTypes))
}

func TestRequestAdminService_ConcurrentNotesAreAllKept(t *testing.T) {
	repos := memory.NewRepositories()
	r := pendingRequest("1")
	require.NoError(t, repos.Request.Create(&r))
	svc := NewRequestAdminService(repos, Options{Now: func() time.Time { return fixedNow }})

	const admins = 200
	var wg sync.WaitGroup
	for i := 0; i < admins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			note := "note"
			_, _, err := svc.Update(r.ID, request.UpdateRequestDTO{InternalNote: &note}, "admin")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(r.ID)
	require.NoError(t, err)
	assert.Len(t, got.InternalNotes, admins+1)
}

func TestBulkUpdate_ReportsIDsAsSubmitted(t *testing.T) {
	svc, mockRequest, _ := setupRequestAdminMocks(t)

	mockRequest.EXPECT().GetByIDForUpdate("1").Return(pendingRequest("1"), nil)
	mockRequest.EXPECT().GetByIDForUpdate("gone").Return(request.ServiceRequest{}, gorm.ErrRecordNotFound)
	mockRequest.EXPECT().Save(gomock.Any()).Return(nil)

	submitted := []string{" 1", "gone "}
	res, err := svc.BulkUpdate(request.BulkUpdateDTO{RequestIDs: submitted, Action: request.BulkComplete}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatedCount)
	require.Len(t, res.FailedUpdates, 1)
	assert.Equal(t, "gone ", res.FailedUpdates[0].ID)
	assert.Contains(t, submitted, res.FailedUpdates[0].ID)
}
