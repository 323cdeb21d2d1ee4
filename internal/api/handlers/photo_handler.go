package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/photo"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/utils"
)

type PhotoHandler struct {
	svc   *application.PhotoService
	repos *repository.Repos
}

func NewPhotoHandler(svc *application.PhotoService, repos *repository.Repos) *PhotoHandler {
	return &PhotoHandler{svc: svc, repos: repos}
}

// Upload godoc
// @Summary Add photos to a property album
// @Tags photos
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param ownerEmail formData string true "Owner e-mail"
// @Param propertyAddress formData string true "Property address"
// @Param caption formData string false "Caption"
// @Param photos formData file true "Images (1 to 20)"
// @Success 201 {object} response.DataResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /photos/upload [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	var input photo.UploadDTO
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err, photo.FieldLabels)
		return
	}

	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
		return
	}
	if !utils.CanAccessOwner(claims, input.OwnerEmail) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Permission denied"})
		return
	}

	files, closeAll, err := formFiles(c, "photos")
	defer closeAll()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid multipart body: " + err.Error()})
		return
	}

	photos, err := h.svc.Upload(c.Request.Context(), input, files)
	if err != nil {
		serviceError(c, err)
		return
	}
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionCreate,
		Resource:   audit.ResourcePropertyPhoto,
		ResourceID: strings.Join(ids, ","),
		After:      photos,
		Summary:    "Uploaded property photos",
	})
	c.JSON(http.StatusCreated, response.OKWithMessage(photos, "Photos uploaded successfully"))
}

// ListByOwner godoc
// @Summary List the photos of one owner
// @Tags photos
// @Security BearerAuth
// @Produce json
// @Param email path string true "Owner e-mail"
// @Success 200 {object} response.DataResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /photos/owner/{email} [get]
func (h *PhotoHandler) ListByOwner(c *gin.Context) {
	items, err := h.svc.ListByOwner(strings.TrimSpace(c.Param("email")))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(items))
}

// File godoc
// @Summary Download a property photo
// @Tags photos
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /photos/file/{filename} [get]
func (h *PhotoHandler) File(c *gin.Context) {
	rc, obj, err := h.svc.OpenFile(c.Request.Context(), c.Param("filename"))
	if err != nil {
		serviceError(c, err)
		return
	}
	streamFile(c, rc, obj)
}
