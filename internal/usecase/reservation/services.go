package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ReservationServices returns the services booked in a reservation, in the
// order they were requested.
type ReservationServices struct {
	repo domain.Repository
}

func NewReservationServices(repo domain.Repository) *ReservationServices {
	return &ReservationServices{repo: repo}
}

func (uc *ReservationServices) Execute(
	ctx context.Context,
	reservationID uint,
) ([]models.Service, error) {

	if _, err := uc.repo.GetReservationByID(ctx, reservationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	return uc.repo.ListServicesForReservation(ctx, reservationID)
}
