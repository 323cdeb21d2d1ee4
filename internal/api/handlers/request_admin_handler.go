package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/utils"
)

type RequestAdminHandler struct {
	svc   *application.RequestAdminService
	repos *repository.Repos
}

func NewRequestAdminHandler(svc *application.RequestAdminService, repos *repository.Repos) *RequestAdminHandler {
	return &RequestAdminHandler{svc: svc, repos: repos}
}

// List godoc
// @Summary Filtered, paginated list of guest requests
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param search query string false "Substring over name, e-mail, address, unit, message and confirmation number"
// @Param status query string false "pending, in-progress, completed or cancelled"
// @Param priority query string false "normal, high or urgent"
// @Param request_type query string false "Request type"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} response.DataResponse{data=request.Page}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/guest-requests [get]
func (h *RequestAdminHandler) List(c *gin.Context) {
	var filter request.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}
	page, err := h.svc.List(filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(page))
}

// Update godoc
// @Summary Update status, priority or add an internal note
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param input body request.UpdateRequestDTO true "Fields to change"
// @Success 200 {object} response.DataResponse
// @Failure 400 {object} response.ErrorResponse "Nothing to update"
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/guest-requests/{id} [put]
func (h *RequestAdminHandler) Update(c *gin.Context) {
	var input request.UpdateRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, request.FieldLabels)
		return
	}
	actor, _ := utils.GetActorFromContext(c)

	id := c.Param("id")
	before, after, err := h.svc.Update(id, input, actor)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionUpdate,
		Resource:   audit.ResourceGuestRequest,
		ResourceID: id,
		Before:     before,
		After:      after,
		Summary:    "Updated guest request " + after.ConfirmationNumber,
	})
	c.JSON(http.StatusOK, response.OKWithMessage(after, "Request updated successfully"))
}

// BulkUpdate godoc
// @Summary Apply one action to many requests
// @Description Each request is updated in its own transaction; failures are reported per id.
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body request.BulkUpdateDTO true "Ids and action"
// @Success 200 {object} response.DataResponse{data=request.BulkResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/guest-requests/bulk-update [put]
func (h *RequestAdminHandler) BulkUpdate(c *gin.Context) {
	var input request.BulkUpdateDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, request.FieldLabels)
		return
	}
	actor, _ := utils.GetActorFromContext(c)

	result, err := h.svc.BulkUpdate(input, actor)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionBulkUpdate,
		Resource:   audit.ResourceGuestRequest,
		ResourceID: string(input.Action),
		Before:     input,
		After:      result,
		Summary:    "Bulk updated guest requests",
	})
	c.JSON(http.StatusOK, response.OK(result))
}

// Reply godoc
// @Summary E-mail a reply to the guest
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param input body request.ReplyDTO true "Reply"
// @Success 200 {object} response.DataResponse{data=request.ReplyReceipt}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse "Mail transport failed"
// @Router /admin/guest-requests/{id}/reply [post]
func (h *RequestAdminHandler) Reply(c *gin.Context) {
	var input request.ReplyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, request.FieldLabels)
		return
	}
	actor, _ := utils.GetActorFromContext(c)

	id := c.Param("id")
	receipt, err := h.svc.Reply(c.Request.Context(), id, input, actor)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionReply,
		Resource:   audit.ResourceGuestRequest,
		ResourceID: id,
		After:      receipt,
		Summary:    "Replied to guest: " + receipt.Subject,
	})
	c.JSON(http.StatusOK, response.OKWithMessage(receipt, "Reply sent successfully"))
}

// Analytics godoc
// @Summary Dashboard counters
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.DataResponse{data=request.Analytics}
// @Router /admin/analytics [get]
func (h *RequestAdminHandler) Analytics(c *gin.Context) {
	a, err := h.svc.Analytics()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(a))
}
