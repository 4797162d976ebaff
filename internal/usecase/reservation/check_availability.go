package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
)

// CheckAvailability decides whether a candidate slot is bookable for a staff
// member. Read-only; the booking transaction runs it again inside its
// critical section before committing.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	staffID uint,
	slot domain.Slot,
) (bool, error) {

	staff, err := uc.repo.GetStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if !staff.Active {
		return false, nil
	}

	// No windows means no default availability: staff must be explicitly
	// scheduled on the date.
	windows, err := uc.repo.ListWindowsForDate(ctx, staffID, slot.Start)
	if err != nil {
		return false, err
	}
	if !domain.AnyWindowCovers(windows, slot) {
		return false, nil
	}

	blocking, err := uc.repo.ListBlockingReservations(ctx, staffID)
	if err != nil {
		return false, err
	}

	for _, res := range blocking {
		occupied := domain.Slot{Start: res.StartTime, End: res.EndTime}
		if slot.Overlaps(occupied) {
			return false, nil
		}
	}

	return true, nil
}
