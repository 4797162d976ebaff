package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/models"
	usecase "github.com/macgonzales94/Felicita/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	db *gorm.DB

	create    *usecase.CreateReservation
	confirm   *usecase.ConfirmReservation
	cancel    *usecase.CancelReservation
	complete  *usecase.CompleteReservation
	setStatus *usecase.SetReservationStatus

	byCustomer  *usecase.ListReservationsByCustomer
	byStaffDate *usecase.ListReservationsByStaffDate
	byBusiness  *usecase.ListReservationsByBusiness
	services    *usecase.ReservationServices
}

func NewReservationHandler(
	db *gorm.DB,
	create *usecase.CreateReservation,
	confirm *usecase.ConfirmReservation,
	cancel *usecase.CancelReservation,
	complete *usecase.CompleteReservation,
	setStatus *usecase.SetReservationStatus,
	byCustomer *usecase.ListReservationsByCustomer,
	byStaffDate *usecase.ListReservationsByStaffDate,
	byBusiness *usecase.ListReservationsByBusiness,
	services *usecase.ReservationServices,
) *ReservationHandler {
	return &ReservationHandler{
		db:          db,
		create:      create,
		confirm:     confirm,
		cancel:      cancel,
		complete:    complete,
		setStatus:   setStatus,
		byCustomer:  byCustomer,
		byStaffDate: byStaffDate,
		byBusiness:  byBusiness,
		services:    services,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	StaffMemberID uint   `json:"staff_member_id" binding:"required"`
	ServiceIDs    []uint `json:"service_ids" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// OWNERSHIP
// ======================================================

// reservationInBusiness loads a reservation only if its staff member belongs
// to the given business. Owners never see or touch another business's books.
func (h *ReservationHandler) reservationInBusiness(
	c *gin.Context,
	reservationID uint,
	businessID uint,
) bool {
	var count int64
	err := h.db.
		Model(&models.Reservation{}).
		Joins("JOIN staff_members ON staff_members.id = reservations.staff_member_id").
		Where("reservations.id = ? AND staff_members.business_id = ?", reservationID, businessID).
		Count(&count).Error
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load reservation.")
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		return false
	}
	return true
}

// ======================================================
// CLIENT SIDE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid reservation data.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), usecase.CreateReservationInput{
		CustomerID: customerID,
		StaffID:    req.StaffMemberID,
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		Start:      req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		writeDomainError(c, err, "Could not create the reservation.")
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.byCustomer.Execute(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reservations.")
		return
	}

	httpresp.List(c, out)
}

// CancelMine lets a client cancel their own reservation.
func (h *ReservationHandler) CancelMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	reservationID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	var count int64
	if err := h.db.
		Model(&models.Reservation{}).
		Where("id = ? AND customer_id = ?", reservationID, customerID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load reservation.")
		return
	}
	if count == 0 {
		httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		return
	}

	var req CancelReservationRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.cancel.Execute(c.Request.Context(), reservationID, req.Reason)
	if err != nil {
		writeDomainError(c, err, "Could not cancel the reservation.")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) ListServices(c *gin.Context) {
	reservationID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	// Clients only see their own reservations; owners only their business's.
	role := c.MustGet(middleware.ContextUserRole).(string)
	switch role {
	case models.RoleClient:
		customerID := c.MustGet(middleware.ContextUserID).(uint)
		var count int64
		if err := h.db.
			Model(&models.Reservation{}).
			Where("id = ? AND customer_id = ?", reservationID, customerID).
			Count(&count).Error; err != nil || count == 0 {
			httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
			return
		}
	case models.RoleOwner:
		businessID := c.MustGet(middleware.ContextBusinessID).(uint)
		if !h.reservationInBusiness(c, reservationID, businessID) {
			return
		}
	}

	out, err := h.services.Execute(c.Request.Context(), reservationID)
	if err != nil {
		writeDomainError(c, err, "Could not list reservation services.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// BUSINESS SIDE
// ======================================================

func (h *ReservationHandler) ListForBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	out, err := h.byBusiness.Execute(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reservations.")
		return
	}

	httpresp.List(c, out)
}

func (h *ReservationHandler) ListByStaffDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staffID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid staff member id.")
		return
	}

	var staff models.StaffMember
	if err := h.db.
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load business.")
		return
	}

	date, err := parseDateInBusiness(&business, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
		return
	}

	out, err := h.byStaffDate.Execute(c.Request.Context(), staffID, date)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reservations.")
		return
	}

	httpresp.List(c, out)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	reservationID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}
	if !h.reservationInBusiness(c, reservationID, businessID) {
		return
	}

	res, err := h.confirm.Execute(c.Request.Context(), reservationID)
	if err != nil {
		writeDomainError(c, err, "Could not confirm the reservation.")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	reservationID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}
	if !h.reservationInBusiness(c, reservationID, businessID) {
		return
	}

	var req CancelReservationRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.cancel.Execute(c.Request.Context(), reservationID, req.Reason)
	if err != nil {
		writeDomainError(c, err, "Could not cancel the reservation.")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	reservationID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}
	if !h.reservationInBusiness(c, reservationID, businessID) {
		return
	}

	res, err := h.complete.Execute(c.Request.Context(), reservationID)
	if err != nil {
		writeDomainError(c, err, "Could not complete the reservation.")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) SetStatus(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	reservationID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}
	if !h.reservationInBusiness(c, reservationID, businessID) {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status payload.")
		return
	}

	res, err := h.setStatus.Execute(c.Request.Context(), reservationID, req.Status)
	if err != nil {
		writeDomainError(c, err, "Could not change the reservation status.")
		return
	}

	httpresp.OK(c, res)
}
