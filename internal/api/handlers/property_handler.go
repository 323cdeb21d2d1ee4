package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/response"
	"github.com/luxserv365/concierge/pkg/utils"
)

type PropertyHandler struct {
	svc   *application.PropertyService
	repos *repository.Repos
}

func NewPropertyHandler(svc *application.PropertyService, repos *repository.Repos) *PropertyHandler {
	return &PropertyHandler{svc: svc, repos: repos}
}

// List godoc
// @Summary List managed properties
// @Tags properties
// @Security BearerAuth
// @Produce json
// @Param search query string false "Owner name, e-mail or address"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Success 200 {object} response.DataResponse{data=application.PropertyPage}
// @Router /admin/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	var q property.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}
	page, err := h.svc.List(q)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(page))
}

// Create godoc
// @Summary Register a property
// @Tags properties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body property.CreatePropertyDTO true "Property"
// @Success 201 {object} response.DataResponse{data=property.Property}
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var input property.CreatePropertyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, property.FieldLabels)
		return
	}
	p, err := h.svc.Create(input)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionCreate,
		Resource:   audit.ResourceProperty,
		ResourceID: p.ID,
		After:      p,
		Summary:    "Created property " + p.PropertyAddress,
	})
	c.JSON(http.StatusCreated, response.OKWithMessage(p, "Property created successfully"))
}

// Update godoc
// @Summary Update a property
// @Tags properties
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param input body property.UpdatePropertyDTO true "Fields to change"
// @Success 200 {object} response.DataResponse{data=property.Property}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	var input property.UpdatePropertyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, property.FieldLabels)
		return
	}
	id := c.Param("id")
	before, after, err := h.svc.Update(id, input)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionUpdate,
		Resource:   audit.ResourceProperty,
		ResourceID: id,
		Before:     before,
		After:      after,
		Summary:    "Updated property " + after.PropertyAddress,
	})
	c.JSON(http.StatusOK, response.OKWithMessage(after, "Property updated successfully"))
}

// Delete godoc
// @Summary Delete a property
// @Tags properties
// @Security BearerAuth
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	p, err := h.svc.Delete(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.RecordChange(c, h.repos.Audit, audit.Change{
		Action:     audit.ActionDelete,
		Resource:   audit.ResourceProperty,
		ResourceID: id,
		Before:     p,
		Summary:    "Deleted property " + p.PropertyAddress,
	})
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Property deleted successfully"})
}
