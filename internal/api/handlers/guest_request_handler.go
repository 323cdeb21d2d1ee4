package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/pkg/response"
)

type GuestRequestHandler struct {
	svc *application.GuestRequestService
}

func NewGuestRequestHandler(svc *application.GuestRequestService) *GuestRequestHandler {
	return &GuestRequestHandler{svc: svc}
}

// Submit godoc
// @Summary Submit a guest service request
// @Description Accepts JSON, or multipart/form-data with up to MAX_GUEST_PHOTOS images under "photos".
// @Tags guest-requests
// @Accept json,mpfd
// @Produce json
// @Param input body request.CreateRequestDTO true "Request details"
// @Success 201 {object} response.SubmissionResponse
// @Failure 400 {object} response.ErrorResponse "Malformed body or too many photos"
// @Failure 413 {object} response.ErrorResponse "Photo too large"
// @Failure 415 {object} response.ErrorResponse "Photo is not an image"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 502 {object} response.ErrorResponse "Photo storage unavailable"
// @Router /guest-requests [post]
func (h *GuestRequestHandler) Submit(c *gin.Context) {
	var input request.CreateRequestDTO
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err, request.FieldLabels)
		return
	}

	uploads, closeAll, err := formFiles(c, "photos")
	defer closeAll()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid multipart body: " + err.Error()})
		return
	}

	r, err := h.svc.Submit(c.Request.Context(), input, uploads)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.SubmissionResponse{
		Success:            true,
		Data:               r,
		ConfirmationNumber: r.ConfirmationNumber,
		Message:            "Request submitted successfully. Expected response time: " + r.ResponseTime() + ".",
	})
}

// Lookup godoc
// @Summary Look up a request by confirmation number
// @Tags guest-requests
// @Produce json
// @Param confirmationNumber path string true "Confirmation number, e.g. LUX-1A2B3C4D"
// @Success 200 {object} response.DataResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /guest-requests/{confirmationNumber} [get]
func (h *GuestRequestHandler) Lookup(c *gin.Context) {
	r, err := h.svc.Lookup(c.Param("confirmationNumber"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(r))
}

// ListAll godoc
// @Summary List every guest request, newest first
// @Tags guest-requests
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.DataResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /guest-requests [get]
func (h *GuestRequestHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll()
	if err != nil {
		serviceError(c, err)
		return
	}
	if items == nil {
		items = []request.ServiceRequest{}
	}
	c.JSON(http.StatusOK, response.OK(items))
}

// Photo godoc
// @Summary Download a guest request photo
// @Tags guest-requests
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /guest-photos/{filename} [get]
func (h *GuestRequestHandler) Photo(c *gin.Context) {
	rc, obj, err := h.svc.OpenPhoto(c.Request.Context(), strings.TrimSpace(c.Param("filename")))
	if err != nil {
		serviceError(c, err)
		return
	}
	streamFile(c, rc, obj)
}
