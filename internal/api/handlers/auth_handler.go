package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/admin"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/utils"
)

type AuthHandler struct {
	svc        *application.AuthService
	properties *application.PropertyService
	repos      *repository.Repos
}

func NewAuthHandler(svc *application.AuthService, properties *application.PropertyService, repos *repository.Repos) *AuthHandler {
	return &AuthHandler{svc: svc, properties: properties, repos: repos}
}

var loginLabels = map[string]string{
	"Username":        "username",
	"Password":        "password",
	"Email":           "email",
	"PropertyAddress": "property address",
}

func tokenResponse(s admin.Session) response.TokenResponse {
	return response.TokenResponse{
		Success:   true,
		Token:     s.Token,
		Username:  s.Username,
		Email:     s.Email,
		Name:      s.Name,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt,
	}
}

// AdminLogin godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body admin.LoginDTO true "Credentials"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input admin.LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, loginLabels)
		return
	}
	session, err := h.svc.AdminLogin(input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(session))
}

// Refresh godoc
// @Summary Exchange a valid admin token for a fresh one
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
		return
	}
	session, err := h.svc.Refresh(c.Request.Context(), claims)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(session))
}

// Logout godoc
// @Summary Revoke the current session token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/logout [post]
// @Router /owner/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
		return
	}
	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Logged out successfully"})
}

// OwnerLogin godoc
// @Summary Owner portal login by e-mail and property address
// @Tags auth
// @Accept json
// @Produce json
// @Param input body admin.OwnerLoginDTO true "Owner credentials"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /owner/login [post]
func (h *AuthHandler) OwnerLogin(c *gin.Context) {
	var input admin.OwnerLoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, loginLabels)
		return
	}
	session, err := h.svc.OwnerLogin(input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(session))
}

// OwnerProperties godoc
// @Summary Properties of the signed-in owner
// @Tags owner
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.DataResponse{data=[]property.Property}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /owner/properties [get]
func (h *AuthHandler) OwnerProperties(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
		return
	}
	items, err := h.properties.ListByOwner(claims.Email)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(items))
}
