package reservation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
)

// FreeSlots lists the candidate start times a client can pick for a staff
// member on a date, given the services they want. Purely advisory: the
// booking transaction re-validates whatever the client picks.
type FreeSlots struct {
	repo domain.Repository
}

func NewFreeSlots(repo domain.Repository) *FreeSlots {
	return &FreeSlots{repo: repo}
}

func (uc *FreeSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("empty_services")
	}

	staff, err := uc.repo.GetStaffByID(ctx, in.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.TimeSlot{}, nil
		}
		return nil, err
	}
	if !staff.Active {
		return []domain.TimeSlot{}, nil
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
	// A zero-length candidate is an empty interval and would stall the walk
	// below.
	if totalMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	duration := time.Duration(totalMinutes) * time.Minute

	windows, err := uc.repo.ListWindowsForDate(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	blocking, err := uc.repo.ListBlockingReservations(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}

	for _, w := range windows {
		if !w.Available {
			continue
		}

		winStart, err := domain.At(in.Date, w.StartTime)
		if err != nil {
			continue
		}
		winEnd, err := domain.At(in.Date, w.EndTime)
		if err != nil {
			continue
		}

		for cur := winStart; !cur.Add(duration).After(winEnd); cur = cur.Add(duration) {
			candidate := domain.Slot{Start: cur, End: cur.Add(duration)}

			conflict := false
			for _, res := range blocking {
				if candidate.Overlaps(domain.Slot{Start: res.StartTime, End: res.EndTime}) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, domain.TimeSlot{
					Start: candidate.Start.Format("15:04"),
					End:   candidate.End.Format("15:04"),
				})
			}
		}
	}

	return slots, nil
}
