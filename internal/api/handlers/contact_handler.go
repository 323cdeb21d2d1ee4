package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/contact"
	"github.com/luxserv365/concierge/pkg/response"
)

type ContactHandler struct {
	svc *application.ContactService
}

func NewContactHandler(svc *application.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Create godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param input body contact.CreateContactDTO true "Contact details"
// @Success 201 {object} response.DataResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var input contact.CreateContactDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, contact.FieldLabels)
		return
	}
	sub, err := h.svc.Create(input)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.OKWithMessage(sub, "Contact form submitted successfully"))
}

// List godoc
// @Summary List contact form submissions
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.DataResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(items))
}
