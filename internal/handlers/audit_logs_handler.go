package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/audit"
	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/httpresp"
	"github.com/Hbollas/LashTechBooking/internal/models"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type AuditSearcher interface {
	Search(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	store AuditSearcher
	hours domain.BusinessHours
}

func NewAuditLogsHandler(store AuditSearcher, hours domain.BusinessHours) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, hours: hours}
}

// List serves GET /admin/audit-logs. Dates are business-local days and to is
// inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	q := audit.Query{
		Action: strings.TrimSpace(c.Query("action")),
		Page:   page,
		Limit:  limit,
	}

	if raw := c.Query("entity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_entity_id", "entity_id must be a UUID.")
			return
		}
		q.EntityID = &id
	}

	if raw := c.Query("from"); raw != "" {
		from, err := h.hours.ParseDate(raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		q.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := h.hours.ParseDate(raw)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		end := to.AddDate(0, 0, 1)
		q.To = &end
	}

	logs, total, err := h.store.Search(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	return page, limit
}
