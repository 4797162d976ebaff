package reservation

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/audit"
	dbpkg "github.com/macgonzales94/Felicita/internal/db"
	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/infra/repository"
	"github.com/macgonzales94/Felicita/internal/lock"
	"github.com/macgonzales94/Felicita/internal/models"
)

const testDate = "2026-09-14"

// fixture is one business with one staff member, two services and a client,
// backed by a throwaway sqlite database.
type fixture struct {
	db   *gorm.DB
	repo domain.Repository

	customer models.User
	business models.Business
	staff    models.StaffMember

	cut   models.Service // 30 min
	color models.Service // 45 min
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database, err := dbpkg.Open(filepath.Join(t.TempDir(), "felicita.db"))
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(database))

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	f := &fixture{
		db:   database,
		repo: repository.NewReservationGormRepository(database),
	}

	f.customer = models.User{
		Username: "carla", Email: "carla@example.com",
		PasswordHash: "x", FullName: "Carla Reyes", Role: models.RoleClient,
	}
	require.NoError(t, database.Create(&f.customer).Error)

	owner := models.User{
		Username: "owner", Email: "owner@example.com",
		PasswordHash: "x", FullName: "Owner", Role: models.RoleOwner,
	}
	require.NoError(t, database.Create(&owner).Error)

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

func (f *fixture) date(t *testing.T) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", testDate, f.location(t))
	require.NoError(t, err)
	return d
}

func (f *fixture) location(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(f.business.Timezone)
	require.NoError(t, err)
	return loc
}

// addWindow opens (or blocks) a stretch of the staff member's test date.
func (f *fixture) addWindow(t *testing.T, start, end string, available bool) {
	t.Helper()
	w := models.AvailabilityWindow{
		StaffMemberID: f.staff.ID,
		Date:          f.date(t),
		StartTime:     start,
		EndTime:       end,
		Available:     available,
	}
	require.NoError(t, f.db.Create(&w).Error)
}

// mustAt places an "HH:MM" clock value on the fixture's test date.
func mustAt(t *testing.T, f *fixture, clock string) time.Time {
	t.Helper()
	at, err := domain.At(f.date(t), clock)
	require.NoError(t, err)
	return at
}

func (f *fixture) dispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(f.db))
}

func (f *fixture) createUC() *CreateReservation {
	return NewCreateReservation(f.repo, lock.NewKeyedLocker(), f.dispatcher())
}

func (f *fixture) bookingInput(start string, serviceIDs ...uint) CreateReservationInput {
	return CreateReservationInput{
		CustomerID: f.customer.ID,
		StaffID:    f.staff.ID,
		ServiceIDs: serviceIDs,
		Date:       testDate,
		Start:      start,
	}
}
