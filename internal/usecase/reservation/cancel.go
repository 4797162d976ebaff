package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/audit"
	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/timezone"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels the reservation, which immediately stops it from blocking
// the staff member's slots. An optional reason is kept in the notes.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	reservationID uint,
	reason string,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	staff, err := uc.repo.GetStaffByID(ctx, res.StaffMemberID)
	if err != nil {
		return nil, err
	}
	business, err := uc.repo.GetBusinessByID(ctx, staff.BusinessID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(business.Timezone)
	if err := domain.Cancel(res, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: staff.BusinessID,
		Action:     "reservation_cancelled",
		Entity:     "reservation",
		EntityID:   &res.ID,
	})

	return res, nil
}
