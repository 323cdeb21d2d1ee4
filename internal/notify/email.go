package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"
)

var ErrNoRecipients = errors.New("no recipients")

// Mail is a single outbound message. HTML is optional.
type Mail struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPMailer delivers mail through an authenticated SMTP relay. Each Send
// opens its own connection.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp: host and from address are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPMailer{cfg: cfg}, nil
}

func (s *SMTPMailer) message(m Mail) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	}
	return msg, nil
}

func (s *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

func (s *SMTPMailer) Send(ctx context.Context, m Mail) error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	msg, err := s.message(m)
	if err != nil {
		return err
	}
	c, err := s.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP relay is configured.
type LogMailer struct {
	Log *slog.Logger
}

func (l LogMailer) Send(_ context.Context, m Mail) error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("mail not sent, smtp disabled",
		"to", strings.Join(m.To, ","),
		"subject", m.Subject,
		"bytes", len(m.Text))
	return nil
}

// EmailSink mails staff when a guest submits a new request.
type EmailSink struct {
	mailer Mailer
	to     []string
}

func NewEmailSink(mailer Mailer, to []string) *EmailSink {
	return &EmailSink{mailer: mailer, to: to}
}

func (e *EmailSink) Name() string { return "email" }

func (e *EmailSink) Notify(ctx context.Context, ev Event) error {
	if ev.Type != EventRequestCreated || ev.Request == nil {
		return nil
	}
	text, html, err := renderStaffAlert(ev)
	if err != nil {
		return err
	}
	return e.mailer.Send(ctx, Mail{
		To:      e.to,
		Subject: StaffAlertSubject(ev),
		Text:    text,
		HTML:    html,
		ReplyTo: ev.Request.GuestEmail,
	})
}

func StaffAlertSubject(ev Event) string {
	return fmt.Sprintf("New Guest Request - %s Priority - %s",
		strings.ToUpper(string(ev.Priority)), ev.ConfirmationNumber)
}
