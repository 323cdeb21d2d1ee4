package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/luxserv365/concierge/internal/config"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/types"
)

var (
	jwtKey  []byte
	revoker Revoker = NewMemoryRevoker()
)

var ErrTokenExpired = errors.New("token expired")

// Init sets the JWT signing key.
func Init() {
	jwtKey = []byte(config.JwtSecret)
}

// UseRevoker replaces the revocation store consulted by JWTAuthMiddleware.
func UseRevoker(r Revoker) {
	revoker = r
}

func CurrentRevoker() Revoker {
	return revoker
}

// GenerateToken signs claims with a fresh token id and the given lifetime.
var GenerateToken = func(claims types.Claims, expireDuration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expireDuration)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.Actor(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    config.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signedToken, err := token.SignedString(jwtKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signedToken, expiresAt, nil
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(config.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, errors.New("token is missing id or expiry")
	}
	return claims, nil
}

func tokenFromRequest(c *gin.Context) (string, string) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", "Authorization header format must be Bearer {token}"
		}
		return parts[1], ""
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie, ""
	}
	// Browsers cannot set headers on websocket handshakes.
	if websocket.IsWebSocketUpgrade(c.Request) {
		if q := c.Query("token"); q != "" {
			return q, ""
		}
	}
	return "", "Authorization required (header or cookie)"
}

// JWTAuthMiddleware validates the session token and rejects revoked ones.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, problem := tokenFromRequest(c)
		if problem != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: problem})
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token: " + err.Error()})
			return
		}

		if time.Now().After(claims.ExpiresAt.Time) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "session store unavailable"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token revoked"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
