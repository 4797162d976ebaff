package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/models"
	usecase "github.com/macgonzales94/Felicita/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated discovery surface: browsing
// businesses, their catalog and staff, and probing free slots.
type PublicHandler struct {
	db        *gorm.DB
	freeSlots *usecase.FreeSlots
	checker   *usecase.CheckAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	freeSlots *usecase.FreeSlots,
	checker *usecase.CheckAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		freeSlots: freeSlots,
		checker:   checker,
	}
}

// ======================================================
// DISCOVERY
// ======================================================

func (h *PublicHandler) ListBusinesses(c *gin.Context) {
	q := h.db.Where("state = ?", models.BusinessActive)

	if businessType := c.Query("type"); businessType != "" {
		q = q.Where("type = ?", businessType)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var businesses []models.Business
	if err := q.Order("name").Find(&businesses).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list businesses.")
		return
	}

	httpresp.List(c, businesses)
}

func (h *PublicHandler) GetBusiness(c *gin.Context) {
	businessID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var business models.Business
	if err := h.db.
		Where("id = ? AND state = ?", businessID, models.BusinessActive).
		First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	httpresp.OK(c, business)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	businessID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	q := h.db.
		Preload("Category").
		Where("business_id = ? AND active = ?", businessID, true)

	if raw := c.Query("category_id"); raw != "" {
		if categoryID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			q = q.Where("category_id = ?", uint(categoryID))
		}
	}

	var services []models.Service
	if err := q.Order("featured DESC, name").Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	businessID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var staff []models.StaffMember
	if err := h.db.
		Where("business_id = ? AND active = ?", businessID, true).
		Order("name").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *PublicHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.
		Where("active = ?", true).
		Order("name").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list categories.")
		return
	}

	httpresp.List(c, categories)
}

// ======================================================
// AVAILABILITY
// ======================================================

// FreeSlots lists every start time on a date where the requested services fit
// for a staff member. Query: date=2006-01-02&service_ids=1,2.
func (h *PublicHandler) FreeSlots(c *gin.Context) {
	staffID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid staff member id.")
		return
	}

	business, ok := h.businessOfStaff(c, staffID)
	if !ok {
		return
	}

	date, err := parseDateInBusiness(business, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
		return
	}

	serviceIDs, ok := parseServiceIDs(c.Query("service_ids"))
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Invalid service ids.")
		return
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), domain.AvailabilityInput{
		StaffID:    staffID,
		ServiceIDs: serviceIDs,
		Date:       date,
	})
	if err != nil {
		writeDomainError(c, err, "Could not compute free slots.")
		return
	}

	httpresp.List(c, slots)
}

// CheckSlot answers whether one concrete start time is bookable.
// Query: date=2006-01-02&time=15:04&service_ids=1,2.
func (h *PublicHandler) CheckSlot(c *gin.Context) {
	staffID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid staff member id.")
		return
	}

	business, ok := h.businessOfStaff(c, staffID)
	if !ok {
		return
	}

	date, err := parseDateInBusiness(business, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
		return
	}

	start, err := domain.At(date, c.Query("time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid time.")
		return
	}

	serviceIDs, ok := parseServiceIDs(c.Query("service_ids"))
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Invalid service ids.")
		return
	}
	if len(serviceIDs) == 0 {
		httperr.BadRequest(c, "empty_services", "At least one service is required.")
		return
	}

	var totalMinutes int
	for _, id := range serviceIDs {
		var svc models.Service
		if err := h.db.First(&svc, id).Error; err != nil {
			httperr.NotFound(c, "service_not_found", "One of the requested services does not exist.")
			return
		}
		totalMinutes += svc.DurationMin
	}

	end := start.Add(time.Duration(totalMinutes) * time.Minute)
	slot, err := domain.NewSlot(start, end)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}
	if !slot.SameDate() {
		httperr.BadRequest(c, "crosses_midnight", "The reservation would run past midnight.")
		return
	}

	available, err := h.checker.Execute(c.Request.Context(), staffID, slot)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not check availability.")
		return
	}

	httpresp.OK(c, gin.H{"available": available})
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) businessOfStaff(c *gin.Context, staffID uint) (*models.Business, bool) {
	var staff models.StaffMember
	if err := h.db.First(&staff, staffID).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}

	var business models.Business
	if err := h.db.First(&business, staff.BusinessID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load business.")
		return nil, false
	}
	return &business, true
}

func parseServiceIDs(raw string) ([]uint, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || id == 0 {
			return nil, false
		}
		out = append(out, uint(id))
	}
	return out, true
}
