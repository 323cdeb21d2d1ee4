package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxserv365/concierge/internal/domain/photo"
	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/pkg/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", append([]Option{WithLogger(logger.Discard())}, opts...)...)
	require.NoError(t, err)
	return c, &calls
}

func validSession() *Session {
	return &Session{Token: "tok", Username: "admin", Role: "admin", ExpiresAt: time.Now().Add(time.Hour)}
}

func guestRequest() request.CreateRequestDTO {
	return request.CreateRequestDTO{
		GuestName:       "Jane Doe",
		GuestEmail:      "jane@example.com",
		PropertyAddress: "12 Ocean Dr",
		RequestType:     request.TypePropertyIssues,
		Message:         "The AC is broken",
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}

// --------------------- Error taxonomy ---------------------
func TestServerErrorMessagePrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message wins", `{"message":"Rate limited","error":"other"}`, "Rate limited"},
		{"error field", `{"success":false,"error":"Request not found"}`, "Request not found"},
		{"no body", ``, "Server error: 503"},
		{"not json", `<html>oops</html>`, "Server error: 503"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := c.LookupRequest(context.Background(), "LUX-1A2B3C4D")

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, KindServer, ce.Kind)
			assert.Equal(t, http.StatusServiceUnavailable, ce.Status)
			assert.Equal(t, tc.want, ce.Message)
		})
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	err := c.Health(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindTimeout, ce.Kind)
	assert.Equal(t, "Request timeout. Please try again.", ce.Message)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base, WithLogger(logger.Discard()))
	require.NoError(t, err)

	err = c.Health(context.Background())
	assert.True(t, IsKind(err, KindNetwork), "got %v", err)
	assert.Equal(t, "Unable to connect to server. Please check your internet connection.", err.Error())
}

func TestValidationHappensBeforeNetwork(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	in := guestRequest()
	in.GuestName = "   "
	in.GuestEmail = "nope"
	_, err := c.SubmitRequest(context.Background(), in)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindValidation, ce.Kind)
	assert.Contains(t, ce.Message, "guest name is required")
	assert.Contains(t, ce.Message, "email must be a valid email address")

	in = guestRequest()
	checkIn, checkOut := "2026-07-10", "2026-07-01"
	in.CheckInDate, in.CheckOutDate = &checkIn, &checkOut
	_, err = c.SubmitRequest(context.Background(), in)
	assert.True(t, IsKind(err, KindValidation))

	_, err = c.LookupRequest(context.Background(), " ")
	assert.True(t, IsKind(err, KindValidation))

	_, err = c.UpdateRequest(context.Background(), validSession(), "id-1", request.UpdateRequestDTO{})
	assert.True(t, IsKind(err, KindValidation))

	_, err = c.BulkUpdate(context.Background(), validSession(), request.BulkUpdateDTO{Action: request.BulkComplete})
	assert.True(t, IsKind(err, KindValidation))

	assert.Zero(t, calls.Load())
}

func TestExpiredSessionIsRejectedLocally(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	expired := validSession()
	expired.ExpiresAt = time.Now().Add(-time.Second)

	_, err := c.Analytics(context.Background(), expired)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, IsKind(err, KindValidation))

	_, err = c.AllRequests(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, IsKind(err, KindValidation))

	_, err = c.ListRequests(context.Background(), nil, request.Filter{})
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = c.UploadPhotos(context.Background(), nil,
		photo.UploadDTO{OwnerEmail: "olive@example.com", PropertyAddress: "22 Palm Ave"},
		File{Name: "a.png", Content: strings.NewReader("png")})
	assert.ErrorIs(t, err, ErrSessionExpired)

	assert.ErrorIs(t, c.Logout(context.Background(), nil), ErrSessionExpired)
	assert.ErrorIs(t, c.DeleteProperty(context.Background(), &Session{Role: "admin", ExpiresAt: time.Now().Add(time.Hour)}, "p1"), ErrSessionExpired)

	assert.Zero(t, calls.Load())
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c, err := New("http://localhost/api", WithHTTPClient(shared), WithTimeout(time.Second))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

// --------------------- Calls ---------------------
func TestSubmitRequest_JSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/guest-requests", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Jane Doe", body["guestName"])
		assert.Equal(t, "normal", body["priority"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"confirmationNumber":"LUX-1A2B3C4D","message":"Request submitted successfully. Expected response time: 2-4 hours.","data":{"id":"r1","confirmationNumber":"LUX-1A2B3C4D","status":"pending"}}`)
	})

	in := guestRequest()
	in.GuestName = "  Jane Doe "
	sub, err := c.SubmitRequest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "LUX-1A2B3C4D", sub.ConfirmationNumber)
	assert.Equal(t, "r1", sub.Request.ID)
	assert.Equal(t, request.StatusPending, sub.Request.Status)
	assert.Contains(t, sub.Message, "Expected response time")
}

func TestSubmitRequest_Multipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Jane Doe", r.FormValue("guestName"))
		assert.Equal(t, "3", r.FormValue("numberOfGuests"))
		files := r.MultipartForm.File["photos"]
		if assert.Len(t, files, 2) {
			assert.Equal(t, "leak.png", files[0].Filename)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"confirmationNumber":"LUX-00000001","data":{}}`)
	})

	in := guestRequest()
	guests := 3
	in.NumberOfGuests = &guests
	sub, err := c.SubmitRequest(context.Background(), in,
		File{Name: "leak.png", Content: strings.NewReader("png-1")},
		File{Name: "floor.png", Content: strings.NewReader("png-2")},
	)
	require.NoError(t, err)
	assert.Equal(t, "LUX-00000001", sub.ConfirmationNumber)
}

func TestListRequests_SendsFiltersAndToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/guest-requests", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "leak", q.Get("search"))
		assert.Equal(t, "urgent", q.Get("priority"))
		assert.Equal(t, "2", q.Get("page"))
		assert.False(t, q.Has("status"))

		_, _ = io.WriteString(w, `{"success":true,"data":{"requests":[{"id":"r9"}],"pagination":{"current_page":2,"total_pages":2,"total_count":11,"per_page":10}}}`)
	})

	page, err := c.ListRequests(context.Background(), validSession(), request.Filter{Search: " leak ", Priority: request.PriorityUrgent, Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Requests, 1)
	assert.Equal(t, "r9", page.Requests[0].ID)
	assert.Equal(t, int64(11), page.Pagination.TotalCount)
}

func TestBulkUpdate_ReportsPartialFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		_, _ = io.WriteString(w, `{"success":true,"data":{"updated_count":1,"total_requests":2,"failed_updates":[{"id":"gone","error":"request not found"}]}}`)
	})

	res, err := c.BulkUpdate(context.Background(), validSession(), request.BulkUpdateDTO{
		RequestIDs: []string{"a", "gone"},
		Action:     request.BulkComplete,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatedCount)
	assert.Equal(t, 2, res.TotalRequests)
	require.Len(t, res.FailedUpdates, 1)
}

func TestAdminLoginDecodesSession(t *testing.T) {
	exp := time.Now().Add(12 * time.Hour).UTC().Truncate(time.Second)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true, "token": "jwt", "username": "admin", "role": "admin", "expiresAt": exp,
		})
	})

	s, err := c.AdminLogin(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", s.Token)
	assert.True(t, s.ExpiresAt.Equal(exp))
	assert.True(t, s.Valid(time.Now()))
	assert.False(t, s.Valid(exp.Add(time.Second)))
}

func TestFilterRequests(t *testing.T) {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	all := []request.ServiceRequest{
		{ID: "a", Status: request.StatusPending, Priority: request.PriorityUrgent, Message: "leak", CreatedAt: base},
		{ID: "b", Status: request.StatusCompleted, Priority: request.PriorityNormal, Message: "towels", CreatedAt: base.Add(time.Hour)},
		{ID: "c", Status: request.StatusPending, Priority: request.PriorityNormal, Message: "Leak again", CreatedAt: base.Add(2 * time.Hour)},
	}

	got, p := FilterRequests(all, request.Filter{Search: "LEAK"})
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, int64(2), p.TotalCount)

	got, _ = FilterRequests(all, request.Filter{Status: request.StatusCompleted})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}
