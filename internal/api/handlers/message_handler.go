package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/message"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/utils"
)

type MessageHandler struct {
	svc   *application.MessageService
	repos *repository.Repos
}

func NewMessageHandler(svc *application.MessageService, repos *repository.Repos) *MessageHandler {
	return &MessageHandler{svc: svc, repos: repos}
}

// Create godoc
// @Summary Send a message from an owner to the team
// @Tags messages
// @Accept json
// @Produce json
// @Param input body message.CreateMessageDTO true "Message"
// @Success 201 {object} response.DataResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var input message.CreateMessageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, message.FieldLabels)
		return
	}
	m, err := h.svc.Create(input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OKWithMessage(m, "Message sent successfully"))
}

// List godoc
// @Summary List every owner message
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.DataResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(items))
}

// ListByOwner godoc
// @Summary List the messages of one owner
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param email path string true "Owner e-mail"
// @Success 200 {object} response.DataResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /messages/owner/{email} [get]
func (h *MessageHandler) ListByOwner(c *gin.Context) {
	items, err := h.svc.ListByOwner(strings.TrimSpace(c.Param("email")))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(items))
}

// MarkRead godoc
// @Summary Mark an owner message as read
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.DataResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	m, err := h.svc.MarkRead(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionMarkRead,
		Resource:   audit.ResourceOwnerMessage,
		ResourceID: id,
		After:      m,
		Summary:    "Marked message as read",
	})
	c.JSON(http.StatusOK, response.OK(m))
}
