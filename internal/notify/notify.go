package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/luxserv365/concierge/internal/domain/request"
)

type EventType string

const (
	EventRequestCreated EventType = "request.created"
	EventRequestUpdated EventType = "request.updated"
	EventRequestReplied EventType = "request.replied"
)

// Event describes a change to a service request. Request carries the full
// record for sinks that render it and is never serialized.
type Event struct {
	Type               EventType               `json:"type"`
	RequestID          string                  `json:"requestId"`
	ConfirmationNumber string                  `json:"confirmationNumber"`
	Status             request.Status          `json:"status"`
	Priority           request.Priority        `json:"priority"`
	RequestType        request.RequestType     `json:"requestType"`
	Actor              string                  `json:"actor,omitempty"`
	At                 time.Time               `json:"at"`
	Request            *request.ServiceRequest `json:"-"`
}

// NewEvent builds an event from the current state of r.
func NewEvent(t EventType, r request.ServiceRequest, actor string, at time.Time) Event {
	snapshot := r.Clone()
	return Event{
		Type:               t,
		RequestID:          r.ID,
		ConfirmationNumber: r.ConfirmationNumber,
		Status:             r.Status,
		Priority:           r.Priority,
		RequestType:        r.RequestType,
		Actor:              actor,
		At:                 at.UTC(),
		Request:            &snapshot,
	}
}

// Sink receives request events. A failing sink never affects the request
// that produced the event.
type Sink interface {
	Name() string
	Notify(ctx context.Context, ev Event) error
}

// Dispatcher fans an event out to every configured sink.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	log     *slog.Logger
}

const defaultSinkTimeout = 15 * time.Second

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{sinks: sinks, timeout: defaultSinkTimeout, log: log}
}

func (d *Dispatcher) WithTimeout(timeout time.Duration) *Dispatcher {
	d.timeout = timeout
	return d
}

func (d *Dispatcher) Add(s Sink) {
	d.sinks = append(d.sinks, s)
}

func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Dispatch delivers ev to each sink in order and returns how many failed.
// Failures are logged, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) int {
	if d == nil {
		return 0
	}
	failed := 0
	for _, s := range d.sinks {
		sctx, cancel := context.WithTimeout(ctx, d.timeout)
		err := s.Notify(sctx, ev)
		cancel()
		if err != nil {
			failed++
			d.log.Warn("notification failed",
				"sink", s.Name(),
				"event", ev.Type,
				"confirmation", ev.ConfirmationNumber,
				"error", err)
			continue
		}
		d.log.Debug("notification sent", "sink", s.Name(), "event", ev.Type, "confirmation", ev.ConfirmationNumber)
	}
	return failed
}

// Go dispatches in the background, detached from the caller's cancellation.
func (d *Dispatcher) Go(ev Event) {
	if d == nil || len(d.sinks) == 0 {
		return
	}
	go d.Dispatch(context.Background(), ev)
}

// SinkFunc adapts a function to Sink.
type SinkFunc struct {
	SinkName string
	Fn       func(ctx context.Context, ev Event) error
}

func (f SinkFunc) Name() string { return f.SinkName }

func (f SinkFunc) Notify(ctx context.Context, ev Event) error { return f.Fn(ctx, ev) }
