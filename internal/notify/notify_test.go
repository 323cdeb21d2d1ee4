package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/pkg/logger"
)

func sampleEvent(t EventType) Event {
	phone := "555-123-4567"
	r := request.ServiceRequest{
		ID:                 "req-1",
		ConfirmationNumber: "LUX-ABCD1234",
		GuestName:          "Jane Doe",
		GuestEmail:         "jane@example.com",
		GuestPhone:         &phone,
		PropertyAddress:    "12 Ocean Dr.",
		RequestType:        request.TypePropertyIssues,
		Priority:           request.PriorityUrgent,
		Status:             request.StatusPending,
		Message:            "The A/C stopped working (again)!",
		Photos:             []request.PhotoRef{{Filename: "a.png", URL: "/api/uploads/a.png"}},
	}
	return NewEvent(t, r, "", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
}

type recordingMailer struct {
	sent []Mail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, mail Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

func TestDispatcherCountsFailures(t *testing.T) {
	var got []string
	ok := SinkFunc{SinkName: "ok", Fn: func(_ context.Context, ev Event) error {
		got = append(got, ev.ConfirmationNumber)
		return nil
	}}
	bad := SinkFunc{SinkName: "bad", Fn: func(context.Context, Event) error {
		return errors.New("boom")
	}}

	d := NewDispatcher(logger.Discard(), bad, ok)
	failed := d.Dispatch(context.Background(), sampleEvent(EventRequestCreated))

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"LUX-ABCD1234"}, got)
	assert.Equal(t, []string{"bad", "ok"}, d.Sinks())
}

func TestDispatcherAppliesTimeout(t *testing.T) {
	slow := SinkFunc{SinkName: "slow", Fn: func(ctx context.Context, _ Event) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	d := NewDispatcher(logger.Discard(), slow).WithTimeout(10 * time.Millisecond)
	assert.Equal(t, 1, d.Dispatch(context.Background(), sampleEvent(EventRequestCreated)))
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.Equal(t, 0, d.Dispatch(context.Background(), sampleEvent(EventRequestCreated)))
	d.Go(sampleEvent(EventRequestCreated))
}

func TestEventJSONOmitsRequest(t *testing.T) {
	ev := sampleEvent(EventRequestUpdated)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Jane Doe")
	assert.Contains(t, string(raw), `"type":"request.updated"`)
	assert.Contains(t, string(raw), `"confirmationNumber":"LUX-ABCD1234"`)
}

func TestEmailSinkSendsStaffAlert(t *testing.T) {
	m := &recordingMailer{}
	sink := NewEmailSink(m, []string{"staff@luxserv365.com"})

	require.NoError(t, sink.Notify(context.Background(), sampleEvent(EventRequestCreated)))
	require.Len(t, m.sent, 1)

	mail := m.sent[0]
	assert.Equal(t, "New Guest Request - URGENT Priority - LUX-ABCD1234", mail.Subject)
	assert.Equal(t, []string{"staff@luxserv365.com"}, mail.To)
	assert.Equal(t, "jane@example.com", mail.ReplyTo)
	assert.Contains(t, mail.Text, "Response Required Within: 2 hours")
	assert.Contains(t, mail.Text, "Phone: 555-123-4567")
	assert.Contains(t, mail.Text, "Photos Attached: 1 photo(s)")
	assert.Contains(t, mail.HTML, "#ef4444")
	assert.Contains(t, mail.HTML, "mailto:jane@example.com")
}

func TestEmailSinkIgnoresOtherEvents(t *testing.T) {
	m := &recordingMailer{}
	sink := NewEmailSink(m, []string{"staff@luxserv365.com"})

	require.NoError(t, sink.Notify(context.Background(), sampleEvent(EventRequestUpdated)))
	assert.Empty(t, m.sent)
}

func TestHTMLAlertEscapesGuestInput(t *testing.T) {
	ev := sampleEvent(EventRequestCreated)
	ev.Request.Message = "<script>alert(1)</script>\nsecond line"

	_, html, err := renderStaffAlert(ev)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<br>second line")
}

func TestLogMailerRequiresRecipients(t *testing.T) {
	l := LogMailer{Log: logger.Discard()}
	assert.ErrorIs(t, l.Send(context.Background(), Mail{Subject: "x"}), ErrNoRecipients)
	assert.NoError(t, l.Send(context.Background(), Mail{To: []string{"a@b.co"}, Subject: "x"}))
}

func TestNewSMTPMailerDefaults(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{})
	assert.Error(t, err)

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", From: "ops@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 587, m.cfg.Port)
	assert.Equal(t, 10*time.Second, m.cfg.Timeout)
	assert.ErrorIs(t, m.Send(context.Background(), Mail{}), ErrNoRecipients)
}

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	errs []error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c.(tgbotapi.MessageConfig))
	if len(b.errs) > 0 {
		err := b.errs[0]
		b.errs = b.errs[1:]
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{}, nil
}

func TestTelegramSinkSendsMarkdown(t *testing.T) {
	bot := &fakeBot{}
	sink := NewTelegramSink(bot, 42)

	require.NoError(t, sink.Notify(context.Background(), sampleEvent(EventRequestCreated)))
	require.Len(t, bot.sent, 1)
	msg := bot.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msg.ParseMode)
	assert.Contains(t, msg.Text, "🚨 *URGENT PRIORITY*")
	assert.Contains(t, msg.Text, "`LUX\\-ABCD1234`")
	assert.Contains(t, msg.Text, "\\(again\\)\\!")
}

func TestTelegramSinkFallsBackToPlainText(t *testing.T) {
	bot := &fakeBot{errs: []error{errors.New("Bad Request: can't parse entities")}}
	sink := NewTelegramSink(bot, 42)

	require.NoError(t, sink.Notify(context.Background(), sampleEvent(EventRequestCreated)))
	require.Len(t, bot.sent, 2)
	assert.Empty(t, bot.sent[1].ParseMode)
	assert.Contains(t, bot.sent[1].Text, "URGENT PRIORITY")
}

func TestTelegramSinkReturnsOtherErrors(t *testing.T) {
	bot := &fakeBot{errs: []error{errors.New("chat not found")}}
	sink := NewTelegramSink(bot, 42)

	err := sink.Notify(context.Background(), sampleEvent(EventRequestCreated))
	assert.Error(t, err)
	assert.Len(t, bot.sent, 1)
}

func TestPreviewTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("é", 250)
	got := preview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 203, len([]rune(got)))
	assert.Equal(t, "short", preview("short"))
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestAMQPSinkPublishesEvent(t *testing.T) {
	ch := &fakeChannel{}
	sink := NewAMQPSink(ch, "luxserv.events")

	require.NoError(t, sink.Notify(context.Background(), sampleEvent(EventRequestCreated)))
	assert.Equal(t, "luxserv.events", ch.exchange)
	assert.Equal(t, "request.created", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var decoded Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, "req-1", decoded.RequestID)
	assert.Equal(t, request.PriorityUrgent, decoded.Priority)
	assert.NoError(t, sink.Close())
}

func TestAMQPSinkWrapsPublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	sink := NewAMQPSink(ch, "x")
	err := sink.Notify(context.Background(), sampleEvent(EventRequestUpdated))
	assert.ErrorContains(t, err, "channel closed")
}
