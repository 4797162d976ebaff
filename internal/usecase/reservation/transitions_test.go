package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

func (f *fixture) book(t *testing.T, start string) *models.Reservation {
	t.Helper()
	res, err := f.createUC().Execute(context.Background(), f.bookingInput(start, f.cut.ID))
	require.NoError(t, err)
	return res
}

func TestReservationLifecycle(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	res := f.book(t, "10:00")

	confirmUC := NewConfirmReservation(f.repo, f.dispatcher())
	completeUC := NewCompleteReservation(f.repo, f.dispatcher())
	ctx := context.Background()

	confirmed, err := confirmUC.Execute(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	completed, err := completeUC.Execute(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// Completed is terminal.
	_, err = confirmUC.Execute(ctx, res.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteRequiresConfirmedFirst(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	res := f.book(t, "10:00")

	completeUC := NewCompleteReservation(f.repo, f.dispatcher())

	_, err := completeUC.Execute(context.Background(), res.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelledIsTerminal(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	res := f.book(t, "10:00")

	cancelUC := NewCancelReservation(f.repo, f.dispatcher())
	confirmUC := NewConfirmReservation(f.repo, f.dispatcher())
	ctx := context.Background()

	cancelled, err := cancelUC.Execute(ctx, res.ID, "no show")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.Contains(t, cancelled.Notes, "no show")

	_, err = confirmUC.Execute(ctx, res.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = cancelUC.Execute(ctx, res.ID, "again")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestSetStatusFollowsTheTransitionTable(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	res := f.book(t, "10:00")

	uc := NewSetReservationStatus(f.repo, f.dispatcher())
	ctx := context.Background()

	_, err := uc.Execute(ctx, res.ID, "completed")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(ctx, res.ID, "archived")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	updated, err := uc.Execute(ctx, res.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), updated.Status)

	updated, err = uc.Execute(ctx, res.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), updated.Status)
}

func TestTransitionsOnMissingReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := NewConfirmReservation(f.repo, f.dispatcher()).Execute(ctx, 9999)
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))

	_, err = NewCancelReservation(f.repo, f.dispatcher()).Execute(ctx, 9999, "")
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))

	_, err = NewCompleteReservation(f.repo, f.dispatcher()).Execute(ctx, 9999)
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))

	_, err = NewSetReservationStatus(f.repo, f.dispatcher()).Execute(ctx, 9999, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
}
