package reservation

import (
	"time"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ===============================
// Time-slot model
// ===============================

// Slot is a half-open interval [Start, End) of absolute time.
type Slot struct {
	Start time.Time
	End   time.Time
}

func NewSlot(start, end time.Time) (Slot, error) {
	if !end.After(start) {
		return Slot{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return Slot{Start: start, End: end}, nil
}

// Overlaps uses half-open semantics: a slot ending exactly when another
// starts does not overlap, so back-to-back bookings are allowed.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// SameDate reports whether the slot ends on the calendar date it starts on.
// Ends exactly at midnight count as crossing into the next day.
func (s Slot) SameDate() bool {
	y1, m1, d1 := s.Start.Date()
	y2, m2, d2 := s.End.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ===============================
// Clock arithmetic
// ===============================

// At places an "HH:MM" clock value on the given calendar date, in the
// date's location.
func At(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// ===============================
// Window containment
// ===============================

// WindowCovers reports whether the candidate slot lies fully inside this one
// window and the window is open. Coverage must come from a single window;
// adjacent open windows are not merged.
func WindowCovers(w models.AvailabilityWindow, slot Slot) bool {
	if !w.Available {
		return false
	}

	winStart, err := At(slot.Start, w.StartTime)
	if err != nil {
		return false
	}
	winEnd, err := At(slot.Start, w.EndTime)
	if err != nil {
		return false
	}

	return !slot.Start.Before(winStart) && !slot.End.After(winEnd)
}

// AnyWindowCovers applies WindowCovers across a staff member's windows for
// the slot's date.
func AnyWindowCovers(windows []models.AvailabilityWindow, slot Slot) bool {
	for _, w := range windows {
		if WindowCovers(w, slot) {
			return true
		}
	}
	return false
}
