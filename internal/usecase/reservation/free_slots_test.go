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

func (f *fixture) availabilityInput(t *testing.T, serviceIDs ...uint) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		StaffID:    f.staff.ID,
		ServiceIDs: serviceIDs,
		Date:       f.date(t),
	}
}

func TestFreeSlotsWalksTheWindow(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "11:00", true)

	uc := NewFreeSlots(f.repo)

	slots, err := uc.Execute(context.Background(), f.availabilityInput(t, f.cut.ID))
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, domain.TimeSlot{Start: "09:30", End: "10:00"}, slots[1])
	assert.Equal(t, domain.TimeSlot{Start: "10:00", End: "10:30"}, slots[2])
	assert.Equal(t, domain.TimeSlot{Start: "10:30", End: "11:00"}, slots[3])
}

func TestFreeSlotsSkipsBookedStretches(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "11:00", true)

	createUC := f.createUC()
	_, err := createUC.Execute(context.Background(), f.bookingInput("09:30", f.cut.ID))
	require.NoError(t, err)

	uc := NewFreeSlots(f.repo)
	slots, err := uc.Execute(context.Background(), f.availabilityInput(t, f.cut.ID))
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[1].Start)
	assert.Equal(t, "10:30", slots[2].Start)
}

func TestFreeSlotsCombinedDuration(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	uc := NewFreeSlots(f.repo)

	// 30 + 45 = 75 minutes per slot.
	slots, err := uc.Execute(context.Background(), f.availabilityInput(t, f.cut.ID, f.color.ID))
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "10:15"}, slots[0])
	assert.Equal(t, domain.TimeSlot{Start: "10:15", End: "11:30"}, slots[1])
}

func TestFreeSlotsSplitShift(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "10:00", true)
	f.addWindow(t, "14:00", "15:00", true)
	f.addWindow(t, "11:00", "12:00", false)

	uc := NewFreeSlots(f.repo)
	slots, err := uc.Execute(context.Background(), f.availabilityInput(t, f.cut.ID))
	require.NoError(t, err)

	// The blocked midday window contributes nothing.
	require.Len(t, slots, 4)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "09:30", slots[1].Start)
	assert.Equal(t, "14:00", slots[2].Start)
	assert.Equal(t, "14:30", slots[3].Start)
}

func TestFreeSlotsEmptyCases(t *testing.T) {
	f := newFixture(t)

	uc := NewFreeSlots(f.repo)
	ctx := context.Background()

	// No windows, no slots.
	slots, err := uc.Execute(ctx, f.availabilityInput(t, f.cut.ID))
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = uc.Execute(ctx, f.availabilityInput(t))
	assert.True(t, httperr.IsBusiness(err, "empty_services"))

	_, err = uc.Execute(ctx, f.availabilityInput(t, 9999))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	// Unknown staff never errors; there is simply nothing to offer.
	in := f.availabilityInput(t, f.cut.ID)
	in.StaffID = 9999
	slots, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFreeSlotsRejectsZeroDurationSets(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	free := models.Service{
		BusinessID: f.business.ID, Name: "Consultation",
		Price: 0, DurationMin: 0, Active: true,
	}
	require.NoError(t, f.db.Create(&free).Error)

	uc := NewFreeSlots(f.repo)

	_, err := uc.Execute(context.Background(), f.availabilityInput(t, free.ID))
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestFreeSlotsHideInactiveStaff(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	f.staff.Active = false
	require.NoError(t, f.db.Save(&f.staff).Error)

	uc := NewFreeSlots(f.repo)

	slots, err := uc.Execute(context.Background(), f.availabilityInput(t, f.cut.ID))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCheckAvailabilityUnknownStaffIsFalse(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, "09:00", "12:00", true)

	uc := NewCheckAvailability(f.repo)

	slot := domain.Slot{Start: mustAt(t, f, "10:00"), End: mustAt(t, f, "10:30")}

	ok, err := uc.Execute(context.Background(), 9999, slot)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Execute(context.Background(), f.staff.ID, slot)
	require.NoError(t, err)
	assert.True(t, ok)
}
