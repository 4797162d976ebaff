package reservation

import (
	"context"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/dto"
)

type ListReservationsByBusiness struct {
	repo domain.Repository
}

func NewListReservationsByBusiness(
	repo domain.Repository,
) *ListReservationsByBusiness {
	return &ListReservationsByBusiness{
		repo: repo,
	}
}

func (uc *ListReservationsByBusiness) Execute(
	ctx context.Context,
	businessID uint,
) ([]dto.ReservationListDTO, error) {

	reservations, err := uc.repo.ListReservationsForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, dto.ReservationListDTO{
			ID:           res.ID,
			Code:         res.Code,
			StartTime:    res.StartTime,
			EndTime:      res.EndTime,
			Status:       res.Status,
			CustomerName: res.Customer.FullName,
			StaffName:    res.StaffMember.Name,
			Notes:        res.Notes,
		})
	}

	return out, nil
}
