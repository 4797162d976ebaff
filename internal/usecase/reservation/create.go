package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/audit"
	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/lock"
	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	CustomerID uint
	StaffID    uint
	ServiceIDs []uint

	Date  string // 2006-01-02, in the business timezone
	Start string // 15:04
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo    domain.Repository
	checker *CheckAvailability
	locker  lock.Locker
	audit   *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:    repo,
		checker: NewCheckAvailability(repo),
		locker:  locker,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	customer, err := uc.repo.GetCustomerByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("customer_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Staff member + owning business (timezone scope)
	// --------------------------------------------------
	staff, err := uc.repo.GetStaffByID(ctx, in.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		return nil, err
	}

	business, err := uc.repo.GetBusinessByID(ctx, staff.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Services: resolved in request order, duplicates kept,
	// each instance adding its duration
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("empty_services")
	}

	byID, err := uc.repo.GetServicesByIDs(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalMinutes := 0
	for _, id := range in.ServiceIDs {
		svc, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		totalMinutes += svc.DurationMin
	}

	// --------------------------------------------------
	// Slot arithmetic in the business timezone
	// --------------------------------------------------
	loc := timezone.Location(business.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	start, err := domain.At(date, in.Start)
	if err != nil {
		return nil, err
	}

	slot, err := domain.NewSlot(start, start.Add(time.Duration(totalMinutes)*time.Minute))
	if err != nil {
		return nil, err
	}

	// A computed end past the requested date is rejected outright rather
	// than wrapped around to a same-day clock value.
	if !slot.SameDate() {
		return nil, httperr.ErrBusiness("crosses_midnight")
	}

	// --------------------------------------------------
	// Critical section: one booking per staff member at a time
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, fmt.Sprintf("staff:%d", in.StaffID))
	if err != nil {
		return nil, err
	}
	defer release()

	ok, err := uc.checker.Execute(ctx, in.StaffID, slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	res := &models.Reservation{
		Code:          uuid.NewString(),
		CustomerID:    customer.ID,
		StaffMemberID: staff.ID,
		StartTime:     slot.Start,
		EndTime:       slot.End,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateReservationWithServices(ctx, res, in.ServiceIDs); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BusinessID: staff.BusinessID,
		UserID:     &customer.ID,
		Action:     "reservation_created",
		Entity:     "reservation",
		EntityID:   &res.ID,
	})

	return res, nil
}
