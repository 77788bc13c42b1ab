package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rashmods/helpdesk/internal/api/dto"
	"github.com/rashmods/helpdesk/internal/persistence"
	"github.com/rashmods/helpdesk/internal/service"

	apperrors "github.com/rashmods/helpdesk/pkg/util/errorutil"
)

// DashboardHandler serves the moderator analytics snapshot and the archived
// transcript browser.
type DashboardHandler struct {
	analytics      *service.AnalyticsService
	archive        *persistence.Redis
	logDestination string
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(analytics *service.AnalyticsService, archive *persistence.Redis, logDestination string) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, archive: archive, logDestination: logDestination}
}

// Snapshot GET /dashboard.
func (h *DashboardHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.FromSnapshot(h.analytics.Snapshot())})
}

// Transcripts GET /dashboard/transcripts. Reads the most recent archived
// transcripts from the Redis sink, newest first. Unavailable when no archive
// cache is configured.
func (h *DashboardHandler) Transcripts(c *fiber.Ctx) error {
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit <= 0 {
		return apperrors.NewValidationError("limit must be a positive integer", nil)
	}

	items, err := h.archive.Transcripts(c.UserContext(), h.logDestination, limit)
	if err != nil {
		return apperrors.NewDomainError("ARCHIVE_UNAVAILABLE", "transcript archive unavailable", http.StatusServiceUnavailable, nil)
	}
	if items == nil {
		items = []string{}
	}
	return c.JSON(fiber.Map{"data": items})
}
