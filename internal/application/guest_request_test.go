package application

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/notify"
	"github.com/luxserv365/concierge/internal/repository/memory"
	"github.com/luxserv365/concierge/pkg/logger"
	"github.com/luxserv365/concierge/pkg/storage"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func pngUpload(name string) storage.Upload {
	return storage.Upload{Filename: name, Size: int64(len(pngPixel)), Body: bytes.NewReader(pngPixel)}
}

func textUpload(name string) storage.Upload {
	body := "just some text, definitely not an image"
	return storage.Upload{Filename: name, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func setupGuestRequestService(t *testing.T, sinks ...notify.Sink) (*GuestRequestService, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	svc := NewGuestRequestService(memory.NewRepositories(), Options{
		Store:          store,
		Events:         notify.NewDispatcher(logger.Discard(), sinks...),
		MaxUploadBytes: 1 << 20,
		MaxGuestPhotos: 2,
		Now:            func() time.Time { return fixedNow },
	})
	return svc, store
}

func validGuestInput() request.CreateRequestDTO {
	return request.CreateRequestDTO{
		GuestName:       "  Jane Doe ",
		GuestEmail:      "jane@example.com",
		PropertyAddress: "12 Ocean Dr",
		RequestType:     request.TypePropertyIssues,
		Message:         "The A/C is broken",
	}
}

var confirmationPattern = regexp.MustCompile(`^LUX-[0-9A-F]{8}$`)

func TestNewConfirmationNumberFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, confirmationPattern, NewConfirmationNumber())
	}
}

func TestSubmit_StoresRequestAndPhotos(t *testing.T) {
	events := make(chan notify.Event, 1)
	sink := notify.SinkFunc{SinkName: "test", Fn: func(_ context.Context, ev notify.Event) error {
		events <- ev
		return nil
	}}
	svc, store := setupGuestRequestService(t, sink)

	r, err := svc.Submit(context.Background(), validGuestInput(), []storage.Upload{pngUpload("ac.png")})
	require.NoError(t, err)

	assert.Regexp(t, confirmationPattern, r.ConfirmationNumber)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Jane Doe", r.GuestName)
	assert.Equal(t, request.StatusPending, r.Status)
	assert.Equal(t, request.PriorityNormal, r.Priority)
	assert.Equal(t, request.SourceGuest, r.Source)
	assert.Empty(t, r.InternalNotes)
	assert.Equal(t, fixedNow, r.CreatedAt)
	require.Len(t, r.Photos, 1)
	assert.Equal(t, "ac.png", r.Photos[0].OriginalName)
	assert.True(t, strings.HasSuffix(r.Photos[0].Filename, ".png"))
	assert.Equal(t, "/api/guest-photos/"+r.Photos[0].Filename, r.Photos[0].URL)
	assert.Equal(t, 1, store.Len())

	select {
	case ev := <-events:
		assert.Equal(t, notify.EventRequestCreated, ev.Type)
		assert.Equal(t, r.ConfirmationNumber, ev.ConfirmationNumber)
	case <-time.After(2 * time.Second):
		t.Fatal("request.created was not dispatched")
	}

	found, err := svc.Lookup(strings.ToLower(r.ConfirmationNumber))
	require.NoError(t, err)
	assert.Equal(t, r.ID, found.ID)

	rc, obj, err := svc.OpenPhoto(context.Background(), r.Photos[0].Filename)
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, pngPixel, data)
	assert.Equal(t, "image/png", obj.ContentType)
}

func TestSubmit_FailingNotifierDoesNotFailSubmission(t *testing.T) {
	sink := notify.SinkFunc{SinkName: "broken", Fn: func(context.Context, notify.Event) error {
		return assert.AnError
	}}
	svc, _ := setupGuestRequestService(t, sink)

	_, err := svc.Submit(context.Background(), validGuestInput(), nil)
	assert.NoError(t, err)
}

func TestSubmit_ValidationError(t *testing.T) {
	svc, _ := setupGuestRequestService(t)
	in := validGuestInput()
	in.GuestName = "   "
	in.GuestEmail = "not-an-email"

	_, err := svc.Submit(context.Background(), in, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "guest name is required")
	assert.Contains(t, verr.Msg, "email must be a valid email address")
}

func TestSubmit_CheckOutBeforeCheckIn(t *testing.T) {
	svc, _ := setupGuestRequestService(t)
	in := validGuestInput()
	in.CheckInDate = ptr("2026-05-10")
	in.CheckOutDate = ptr("2026-05-01")

	_, err := svc.Submit(context.Background(), in, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, request.ErrCheckOutBeforeCheckIn.Error(), verr.Msg)
}

func TestSubmit_TooManyPhotos(t *testing.T) {
	svc, store := setupGuestRequestService(t)

	_, err := svc.Submit(context.Background(), validGuestInput(), []storage.Upload{
		pngUpload("1.png"), pngUpload("2.png"), pngUpload("3.png"),
	})
	assert.ErrorIs(t, err, ErrTooManyPhotos)
	assert.Equal(t, 0, store.Len())
}

func TestSubmit_RejectsNonImagesAndCleansUp(t *testing.T) {
	svc, store := setupGuestRequestService(t)

	_, err := svc.Submit(context.Background(), validGuestInput(), []storage.Upload{
		pngUpload("ok.png"), textUpload("notes.txt"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
	assert.Equal(t, 0, store.Len())

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmit_FileTooLarge(t *testing.T) {
	svc, _ := setupGuestRequestService(t)
	big := pngUpload("huge.png")
	big.Size = 2 << 20

	_, err := svc.Submit(context.Background(), validGuestInput(), []storage.Upload{big})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestLookup_Unknown(t *testing.T) {
	svc, _ := setupGuestRequestService(t)

	_, err := svc.Lookup("LUX-DEADBEEF")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestOpenPhoto_RejectsTraversal(t *testing.T) {
	svc, _ := setupGuestRequestService(t)

	_, _, err := svc.OpenPhoto(context.Background(), "../secrets")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
