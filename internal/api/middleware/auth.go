package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/types"
	"github.com/luxserv365/concierge/pkg/utils"
)

// Auth handles role checks on top of JWTAuthMiddleware.
type Auth struct{}

func NewAuth() *Auth {
	return &Auth{}
}

// Admin lets only admin sessions through.
func (a *Auth) Admin() gin.HandlerFunc {
	return a.require(func(c *gin.Context, claims *types.Claims) bool {
		return claims.IsAdmin()
	})
}

// Owner lets only owner sessions through.
func (a *Auth) Owner() gin.HandlerFunc {
	return a.require(func(c *gin.Context, claims *types.Claims) bool {
		return claims.Role == types.RoleOwner
	})
}

// OwnerOrAdmin admits admins and the owner whose e-mail is in the given path parameter.
func (a *Auth) OwnerOrAdmin(param string) gin.HandlerFunc {
	return a.require(func(c *gin.Context, claims *types.Claims) bool {
		return utils.CanAccessOwner(claims, strings.TrimSpace(c.Param(param)))
	})
}

func (a *Auth) require(allowed func(*gin.Context, *types.Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaimsFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}
		if !allowed(c, claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Permission denied"})
			return
		}
		c.Next()
	}
}
