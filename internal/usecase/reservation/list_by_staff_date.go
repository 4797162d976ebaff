package reservation

import (
	"context"
	"time"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/dto"
)

type ListReservationsByStaffDate struct {
	repo domain.Repository
}

func NewListReservationsByStaffDate(
	repo domain.Repository,
) *ListReservationsByStaffDate {
	return &ListReservationsByStaffDate{
		repo: repo,
	}
}

func (uc *ListReservationsByStaffDate) Execute(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		date.Location(),
	)
	end := start.Add(24 * time.Hour)

	reservations, err := uc.repo.ListReservationsForStaffPeriod(
		ctx,
		staffID,
		start,
		end,
	)
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
			Notes:        res.Notes,
		})
	}

	return out, nil
}
