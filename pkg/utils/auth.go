package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luxserv365/concierge/pkg/types"
)

var ErrNoClaims = errors.New("user claims not found in context")

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok || claims == nil {
		return nil, errors.New("invalid user claims type")
	}
	return claims, nil
}

// GetActorFromContext returns the admin username or owner e-mail of the session.
var GetActorFromContext = func(c *gin.Context) (string, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return "", err
	}
	return claims.Actor(), nil
}

// CanAccessOwner reports whether the session may see data belonging to email.
func CanAccessOwner(claims *types.Claims, email string) bool {
	if claims == nil {
		return false
	}
	if claims.IsAdmin() {
		return true
	}
	return claims.Role == types.RoleOwner && email != "" && strings.EqualFold(claims.Email, strings.TrimSpace(email))
}
