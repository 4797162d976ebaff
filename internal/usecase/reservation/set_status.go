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

// SetReservationStatus applies an arbitrary target status. The transition
// table still applies, so this cannot reach states the dedicated operations
// could not.
type SetReservationStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetReservationStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetReservationStatus {
	return &SetReservationStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetReservationStatus) Execute(
	ctx context.Context,
	reservationID uint,
	status string,
) (*models.Reservation, error) {

	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

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
	if err := domain.Transition(res, target, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: staff.BusinessID,
		Action:     "reservation_status_changed",
		Entity:     "reservation",
		EntityID:   &res.ID,
		Metadata:   map[string]string{"status": string(target)},
	})

	return res, nil
}
