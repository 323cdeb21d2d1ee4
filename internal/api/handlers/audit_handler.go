package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/pkg/response"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary Query audit logs
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param actor query string false "Admin username or owner e-mail"
// @Param resource_type query string false "Resource: guest_request, property, property_photo, inspection_report or owner_message"
// @Param action query string false "Action: create, update, delete, bulk_update, reply or mark_read"
// @Param start_time query string false "Start time (RFC3339)"
// @Param end_time query string false "End time (RFC3339)"
// @Param limit query int false "Limit (default 100, max 1000)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.DataResponse{data=[]audit.AuditLog}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse "end_time before start_time"
// @Router /admin/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	q := audit.Query{
		Actor:    c.Query("actor"),
		Resource: audit.Resource(c.Query("resource_type")),
		Action:   audit.Action(c.Query("action")),
	}

	var err error
	if q.From, err = queryTime(c, "start_time"); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if q.To, err = queryTime(c, "end_time"); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if q.Limit, err = queryInt(c, "limit", 1); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if q.Offset, err = queryInt(c, "offset", 0); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	logs, err := h.svc.Trail(q)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(logs))
}

func queryTime(c *gin.Context, key string) (time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format, must be RFC3339", key)
	}
	return t, nil
}

// queryInt parses an optional integer parameter no smaller than floor.
func queryInt(c *gin.Context, key string, floor int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < floor {
		return 0, fmt.Errorf("%s must be an integer of at least %d", key, floor)
	}
	return n, nil
}
