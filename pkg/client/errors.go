package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/go-playground/validator/v10"

	"github.com/luxserv365/concierge/pkg/validation"
)

// Kind classifies a failed call. None of them is retried.
type Kind int

const (
	KindTimeout Kind = iota + 1
	KindServer
	KindNetwork
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

const (
	msgTimeout = "Request timeout. Please try again."
	msgNetwork = "Unable to connect to server. Please check your internet connection."
)

// Error is what every client method returns on failure. Message is safe to
// show to the end user; Err keeps the underlying cause for logging.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func transportError(err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Message: msgNetwork, Err: err}
}

// serverError prefers the body's message, then its error, then the status.
func serverError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("Server error: %d", status)
	}
	return &Error{Kind: KindServer, Status: status, Message: msg}
}

func validationError(err error, labels map[string]string) *Error {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: validation.Message(err, labels), Err: err}
	}
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

func invalid(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}
