package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/audit"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{
		db:    db,
		audit: dispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type StaffRequest struct {
	Name     string  `json:"name" binding:"required"`
	Position string  `json:"position"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Photo    string  `json:"photo"`
	Bio      string  `json:"bio"`
	Rating   float32 `json:"rating"`
}

type WindowRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Available *bool  `json:"available"`
}

// ======================================================
// STAFF CRUD
// ======================================================

func (h *StaffHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var staff []models.StaffMember
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("name").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid staff data.")
		return
	}

	staff := models.StaffMember{
		BusinessID: businessID,
		Name:       req.Name,
		Position:   req.Position,
		Email:      req.Email,
		Phone:      req.Phone,
		Photo:      req.Photo,
		Bio:        req.Bio,
		Rating:     req.Rating,
		Active:     true,
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create staff member.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "staff_created",
		Entity:     "staff_member",
		EntityID:   &staff.ID,
	})

	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid staff data.")
		return
	}

	staff.Name = req.Name
	staff.Position = req.Position
	staff.Email = req.Email
	staff.Phone = req.Phone
	staff.Photo = req.Photo
	staff.Bio = req.Bio
	staff.Rating = req.Rating

	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update staff member.")
		return
	}

	httpresp.OK(c, staff)
}

// Deactivate takes a staff member off the booking surface without touching
// the reservations that already reference them.
func (h *StaffHandler) Deactivate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	staff.Active = false
	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not deactivate staff member.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "staff_deactivated",
		Entity:     "staff_member",
		EntityID:   &staff.ID,
	})

	httpresp.OK(c, staff)
}

func (h *StaffHandler) Activate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	staff.Active = true
	if err := h.db.Save(staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not activate staff member.")
		return
	}

	httpresp.OK(c, staff)
}

// ======================================================
// AVAILABILITY WINDOWS
// ======================================================

func (h *StaffHandler) ListWindows(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	q := h.db.Where("staff_member_id = ?", staff.ID)

	if dateStr := c.Query("date"); dateStr != "" {
		business, ok := h.ownBusiness(c, businessID)
		if !ok {
			return
		}
		date, err := parseDateInBusiness(business, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
			return
		}
		// Same calendar-value comparison the repository uses; a timestamp
		// parameter shifts across the session time zone on postgres.
		q = q.Where(
			"date >= ? AND date < ?",
			date.Format("2006-01-02"),
			date.AddDate(0, 0, 1).Format("2006-01-02"),
		)
	}

	var windows []models.AvailabilityWindow
	if err := q.Order("date, start_time").Find(&windows).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list availability windows.")
		return
	}

	httpresp.List(c, windows)
}

func (h *StaffHandler) CreateWindow(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	business, ok := h.ownBusiness(c, businessID)
	if !ok {
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid window data.")
		return
	}

	window, ok := h.buildWindow(c, business, staff.ID, req)
	if !ok {
		return
	}

	if err := h.db.Create(window).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create availability window.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "window_created",
		Entity:     "availability_window",
		EntityID:   &window.ID,
	})

	c.JSON(http.StatusCreated, window)
}

func (h *StaffHandler) UpdateWindow(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	windowID, ok := idParam(c, "windowId")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid window id.")
		return
	}

	var window models.AvailabilityWindow
	if err := h.db.
		Where("id = ? AND staff_member_id = ?", windowID, staff.ID).
		First(&window).Error; err != nil {
		httperr.NotFound(c, "window_not_found", "Availability window not found.")
		return
	}

	business, ok := h.ownBusiness(c, businessID)
	if !ok {
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid window data.")
		return
	}

	updated, ok := h.buildWindow(c, business, staff.ID, req)
	if !ok {
		return
	}

	window.Date = updated.Date
	window.StartTime = updated.StartTime
	window.EndTime = updated.EndTime
	window.Available = updated.Available

	if err := h.db.Save(&window).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update availability window.")
		return
	}

	httpresp.OK(c, window)
}

func (h *StaffHandler) DeleteWindow(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staff, ok := h.staffInBusiness(c, businessID)
	if !ok {
		return
	}

	windowID, ok := idParam(c, "windowId")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid window id.")
		return
	}

	result := h.db.
		Where("id = ? AND staff_member_id = ?", windowID, staff.ID).
		Delete(&models.AvailabilityWindow{})
	if result.Error != nil {
		httperr.Internal(c, "internal_error", "Could not delete availability window.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "window_not_found", "Availability window not found.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================

func (h *StaffHandler) staffInBusiness(c *gin.Context, businessID uint) (*models.StaffMember, bool) {
	staffID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid staff member id.")
		return nil, false
	}

	var staff models.StaffMember
	if err := h.db.
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}
	return &staff, true
}

func (h *StaffHandler) ownBusiness(c *gin.Context, businessID uint) (*models.Business, bool) {
	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load business.")
		return nil, false
	}
	return &business, true
}

func (h *StaffHandler) buildWindow(
	c *gin.Context,
	business *models.Business,
	staffID uint,
	req WindowRequest,
) (*models.AvailabilityWindow, bool) {

	date, err := parseDateInBusiness(business, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
		return nil, false
	}
	if !validClockRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_date_or_time", "Start must be a clock time before end.")
		return nil, false
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	return &models.AvailabilityWindow{
		StaffMemberID: staffID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Available:     available,
	}, true
}
