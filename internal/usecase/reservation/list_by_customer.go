package reservation

import (
	"context"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/dto"
)

type ListReservationsByCustomer struct {
	repo domain.Repository
}

func NewListReservationsByCustomer(
	repo domain.Repository,
) *ListReservationsByCustomer {
	return &ListReservationsByCustomer{
		repo: repo,
	}
}

func (uc *ListReservationsByCustomer) Execute(
	ctx context.Context,
	customerID uint,
) ([]dto.ReservationListDTO, error) {

	reservations, err := uc.repo.ListReservationsForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, dto.ReservationListDTO{
			ID:        res.ID,
			Code:      res.Code,
			StartTime: res.StartTime,
			EndTime:   res.EndTime,
			Status:    res.Status,
			StaffName: res.StaffMember.Name,
			Notes:     res.Notes,
		})
	}

	return out, nil
}
