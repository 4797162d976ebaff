package reservation

import (
	"time"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(res *models.Reservation, now time.Time) error {
	if err := CanConfirm(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusConfirmed)
	res.ConfirmedAt = &now
	return nil
}

func Cancel(res *models.Reservation, reason string, now time.Time) error {
	if err := CanCancel(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
	if reason != "" {
		if res.Notes != "" {
			res.Notes += " | "
		}
		res.Notes += reason
	}
	return nil
}

func Complete(res *models.Reservation, now time.Time) error {
	if err := CanComplete(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusCompleted)
	res.CompletedAt = &now
	return nil
}

// Transition applies an arbitrary target status, still guarded by the
// transition table.
func Transition(res *models.Reservation, to Status, now time.Time) error {
	switch to {
	case StatusConfirmed:
		return Confirm(res, now)
	case StatusCancelled:
		return Cancel(res, "", now)
	case StatusCompleted:
		return Complete(res, now)
	default:
		// Nothing transitions back to pending.
		return httperr.ErrBusiness("invalid_state")
	}
}
