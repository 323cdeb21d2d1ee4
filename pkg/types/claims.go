package types

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// Actor is the name recorded in audit logs and lastUpdatedBy fields.
func (c *Claims) Actor() string {
	if c == nil {
		return ""
	}
	if c.Username != "" {
		return c.Username
	}
	return c.Email
}
