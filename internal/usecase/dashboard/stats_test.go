package dashboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/macgonzales94/Felicita/internal/db"
	"github.com/macgonzales94/Felicita/internal/models"
)

type statsFixture struct {
	db       *gorm.DB
	business models.Business
	staff    models.StaffMember
	customer models.User
	cut      models.Service // 50.00
	color    models.Service // 80.00
}

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()

	database, err := dbpkg.Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(database))

	f := &statsFixture{db: database}

	owner := models.User{
		Username: "owner", Email: "owner@example.com",
		PasswordHash: "x", Role: models.RoleOwner,
	}
	require.NoError(t, database.Create(&owner).Error)

	f.customer = models.User{
		Username: "carla", Email: "carla@example.com",
		PasswordHash: "x", Role: models.RoleClient,
	}
	require.NoError(t, database.Create(&f.customer).Error)

	f.business = models.Business{
		UserID: owner.ID, Name: "Felicita Salon",
		Timezone: "America/Lima", State: models.BusinessActive,
		RegisteredAt: time.Now(),
	}
	require.NoError(t, database.Create(&f.business).Error)

	f.staff = models.StaffMember{
		BusinessID: f.business.ID, Name: "Maria", Active: true,
	}
	require.NoError(t, database.Create(&f.staff).Error)

	f.cut = models.Service{
		BusinessID: f.business.ID, Name: "Haircut",
		Price: 50, DurationMin: 30, Active: true,
	}
	require.NoError(t, database.Create(&f.cut).Error)

	f.color = models.Service{
		BusinessID: f.business.ID, Name: "Color",
		Price: 80, DurationMin: 45, Active: true,
	}
	require.NoError(t, database.Create(&f.color).Error)

	return f
}

// seedReservation inserts a reservation with its service links, bypassing
// the booking flow.
func (f *statsFixture) seedReservation(
	t *testing.T,
	start time.Time,
	status string,
	serviceIDs ...uint,
) models.Reservation {
	t.Helper()

	res := models.Reservation{
		Code:          uuid.NewString(),
		CustomerID:    f.customer.ID,
		StaffMemberID: f.staff.ID,
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        status,
	}
	require.NoError(t, f.db.Create(&res).Error)

	for i, id := range serviceIDs {
		link := models.ReservationService{
			ReservationID: res.ID, ServiceID: id, Position: i,
		}
		require.NoError(t, f.db.Create(&link).Error)
	}
	return res
}

func TestRevenueCountsOnlyConfirmedAndCompleted(t *testing.T) {
	f := newStatsFixture(t)
	now := time.Now()

	f.seedReservation(t, now, "confirmed", f.cut.ID)            // 50
	f.seedReservation(t, now, "completed", f.cut.ID, f.color.ID) // 130
	f.seedReservation(t, now, "pending", f.color.ID)             // ignored
	f.seedReservation(t, now, "cancelled", f.color.ID)           // ignored

	stats := NewStats(f.db)

	total, err := stats.Revenue(
		context.Background(),
		f.business.ID,
		now.Add(-time.Hour),
		now.Add(time.Hour),
	)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, total, 0.001)

	// Out of range.
	total, err = stats.Revenue(
		context.Background(),
		f.business.ID,
		now.Add(-2*time.Hour),
		now.Add(-time.Hour),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, total, 0.001)

	// Another business sees nothing.
	total, err = stats.Revenue(
		context.Background(),
		9999,
		now.Add(-time.Hour),
		now.Add(time.Hour),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, total, 0.001)
}

func TestCountReservationsAndStatusDistribution(t *testing.T) {
	f := newStatsFixture(t)
	now := time.Now()

	f.seedReservation(t, now, "pending", f.cut.ID)
	f.seedReservation(t, now, "confirmed", f.cut.ID)
	f.seedReservation(t, now, "confirmed", f.cut.ID)
	f.seedReservation(t, now.Add(-48*time.Hour), "completed", f.cut.ID)

	stats := NewStats(f.db)
	ctx := context.Background()

	count, err := stats.CountReservations(ctx, f.business.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	dist, err := stats.StatusDistribution(ctx, f.business.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dist["pending"])
	assert.EqualValues(t, 2, dist["confirmed"])
	assert.EqualValues(t, 1, dist["completed"])
}

func TestCountByWeekdayBucketsStarts(t *testing.T) {
	f := newStatsFixture(t)
	now := time.Now()

	f.seedReservation(t, now.Add(-24*time.Hour), "confirmed", f.cut.ID)
	f.seedReservation(t, now.Add(-24*time.Hour), "pending", f.cut.ID)

	stats := NewStats(f.db)

	byWeekday, err := stats.CountByWeekday(context.Background(), f.business.ID, 4)
	require.NoError(t, err)

	require.Len(t, byWeekday, 7)
	yesterday := now.Add(-24 * time.Hour).Weekday()
	assert.EqualValues(t, 2, byWeekday[yesterday])
}

func TestPopularServices(t *testing.T) {
	f := newStatsFixture(t)
	now := time.Now()

	f.seedReservation(t, now, "confirmed", f.cut.ID)
	f.seedReservation(t, now, "confirmed", f.cut.ID, f.color.ID)
	f.seedReservation(t, now, "pending", f.cut.ID)

	stats := NewStats(f.db)

	rows, err := stats.PopularServices(context.Background(), f.business.ID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, f.cut.ID, rows[0].ServiceID)
	assert.EqualValues(t, 3, rows[0].Count)
	assert.EqualValues(t, 1, rows[1].Count)
}

func TestFrequentClientsRanksByReservationCount(t *testing.T) {
	f := newStatsFixture(t)
	now := time.Now()

	other := models.User{
		Username: "diego", Email: "diego@example.com",
		PasswordHash: "x", Role: models.RoleClient, FullName: "Diego Paz",
	}
	require.NoError(t, f.db.Create(&other).Error)

	f.seedReservation(t, now, "confirmed", f.cut.ID)
	f.seedReservation(t, now.Add(time.Hour), "completed", f.cut.ID)
	f.seedReservation(t, now.Add(2*time.Hour), "cancelled", f.cut.ID) // ignored

	regular := f.customer
	f.customer = other
	f.seedReservation(t, now.Add(3*time.Hour), "pending", f.color.ID)
	f.customer = regular

	stats := NewStats(f.db)

	rows, err := stats.FrequentClients(context.Background(), f.business.ID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, regular.ID, rows[0].CustomerID)
	assert.EqualValues(t, 2, rows[0].Count)
	assert.Equal(t, other.ID, rows[1].CustomerID)
	assert.EqualValues(t, 1, rows[1].Count)

	// Unknown business sees nobody.
	rows, err = stats.FrequentClients(context.Background(), 9999, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTotalClientsAndActiveServices(t *testing.T) {
	f := newStatsFixture(t)

	stats := NewStats(f.db)
	ctx := context.Background()

	clients, err := stats.TotalClients(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, clients)

	active, err := stats.ActiveServices(ctx, f.business.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, active)

	f.cut.Active = false
	require.NoError(t, f.db.Save(&f.cut).Error)

	active, err = stats.ActiveServices(ctx, f.business.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)
}
