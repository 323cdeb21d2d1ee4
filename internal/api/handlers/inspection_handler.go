package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/inspection"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/utils"
)

type InspectionHandler struct {
	svc   *application.InspectionService
	repos *repository.Repos
}

func NewInspectionHandler(svc *application.InspectionService, repos *repository.Repos) *InspectionHandler {
	return &InspectionHandler{svc: svc, repos: repos}
}

// Create godoc
// @Summary Publish an inspection report
// @Tags inspections
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param notes formData string false "Notes"
// @Param ownerEmail formData string true "Owner e-mail"
// @Param propertyAddress formData string true "Property address"
// @Param inspectionDate formData string true "Inspection date (YYYY-MM-DD)"
// @Param reportFile formData file false "Report file (pdf, doc, docx or image)"
// @Success 201 {object} response.DataResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var input inspection.CreateReportDTO
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err, inspection.FieldLabels)
		return
	}

	file, closeFile, err := formFile(c, "reportFile")
	defer closeFile()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid multipart body: " + err.Error()})
		return
	}

	actor, _ := utils.GetActorFromContext(c)
	rep, err := h.svc.Create(c.Request.Context(), input, file, actor)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionCreate,
		Resource:   audit.ResourceInspection,
		ResourceID: rep.ID,
		After:      rep,
		Summary:    "Published inspection report " + rep.Title,
	})
	c.JSON(http.StatusCreated, response.OKWithMessage(rep, "Inspection report uploaded successfully"))
}

// ListByOwner godoc
// @Summary List the inspection reports of one owner
// @Tags inspections
// @Security BearerAuth
// @Produce json
// @Param email path string true "Owner e-mail"
// @Success 200 {object} response.DataResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /inspections/owner/{email} [get]
func (h *InspectionHandler) ListByOwner(c *gin.Context) {
	items, err := h.svc.ListByOwner(strings.TrimSpace(c.Param("email")))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(items))
}

// File godoc
// @Summary Download an inspection report file
// @Tags inspections
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /inspections/file/{filename} [get]
func (h *InspectionHandler) File(c *gin.Context) {
	rc, obj, err := h.svc.OpenFile(c.Request.Context(), c.Param("filename"))
	if err != nil {
		serviceError(c, err)
		return
	}
	streamFile(c, rc, obj)
}
