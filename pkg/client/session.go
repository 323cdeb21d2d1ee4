package client

import (
	"errors"
	"time"
)

var ErrSessionExpired = errors.New("session expired")

// Session is an authenticated login. It is passed explicitly to every call
// that needs it and checked locally before any request goes out.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the session can still be used at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

func (c *Client) checkSession(s *Session) error {
	if !s.Valid(c.now()) {
		return &Error{Kind: KindValidation, Message: "Session expired. Please log in again.", Err: ErrSessionExpired}
	}
	return nil
}
