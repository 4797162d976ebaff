package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/usecase/dashboard"
)

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	stats *dashboard.Stats
}

func NewDashboardHandler(stats *dashboard.Stats) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// ======================================================
// OWNER
// ======================================================

// Summary aggregates the owner's dashboard in one response: counts and
// revenue for today / this week / this month, plus distributions.
func (h *DashboardHandler) Summary(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	h.writeSummary(c, businessID)
}

func (h *DashboardHandler) WeekdayLoad(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	weeks := 4
	if raw := c.Query("weeks"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 52 {
			weeks = parsed
		}
	}

	byWeekday, err := h.stats.CountByWeekday(c.Request.Context(), businessID, weeks)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not compute weekday load.")
		return
	}

	out := make(map[string]int64, len(byWeekday))
	for day, count := range byWeekday {
		out[day.String()] = count
	}

	httpresp.OK(c, gin.H{"weeks": weeks, "by_weekday": out})
}

func (h *DashboardHandler) PopularServices(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	rows, err := h.stats.PopularServices(c.Request.Context(), businessID, 10)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not compute popular services.")
		return
	}

	httpresp.List(c, rows)
}

func (h *DashboardHandler) FrequentClients(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	rows, err := h.stats.FrequentClients(c.Request.Context(), businessID, 10)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not compute frequent clients.")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// ADMIN
// ======================================================

// PlatformSummary is the admin view: the same aggregates without a business
// scope, plus platform-wide client counts.
func (h *DashboardHandler) PlatformSummary(c *gin.Context) {
	h.writeSummary(c, 0)
}

// ======================================================
// SHARED
// ======================================================

func (h *DashboardHandler) writeSummary(c *gin.Context, businessID uint) {
	ctx := c.Request.Context()
	now := time.Now()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := h.stats.CountReservations(ctx, businessID, dayStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}
	week, err := h.stats.CountReservations(ctx, businessID, weekStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}
	month, err := h.stats.CountReservations(ctx, businessID, monthStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}

	revenueMonth, err := h.stats.Revenue(ctx, businessID, monthStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}

	statuses, err := h.stats.StatusDistribution(ctx, businessID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}

	recent, err := h.stats.RecentReservations(ctx, businessID, 5)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}

	activeServices, err := h.stats.ActiveServices(ctx, businessID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load dashboard.")
		return
	}

	summary := gin.H{
		"reservations_today":      today,
		"reservations_this_week":  week,
		"reservations_this_month": month,
		"revenue_this_month":      revenueMonth,
		"status_distribution":     statuses,
		"recent_reservations":     recent,
		"active_services":         activeServices,
	}

	if businessID == 0 {
		clients, err := h.stats.TotalClients(ctx)
		if err != nil {
			httperr.Internal(c, "internal_error", "Could not load dashboard.")
			return
		}
		summary["total_clients"] = clients
	}

	httpresp.OK(c, summary)
}
