package reservation

import (
	"context"
	"time"

	"github.com/macgonzales94/Felicita/internal/models"
)

type Repository interface {
	// -------- Customer / Staff --------
	GetCustomerByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetStaffByID(
		ctx context.Context,
		id uint,
	) (*models.StaffMember, error)

	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	// -------- Service catalog --------
	GetServicesByIDs(
		ctx context.Context,
		ids []uint,
	) (map[uint]models.Service, error)

	// -------- Availability --------
	ListWindowsForDate(
		ctx context.Context,
		staffID uint,
		date time.Time,
	) ([]models.AvailabilityWindow, error)

	// ListBlockingReservations returns every reservation of the staff member
	// that still occupies its slot (everything but cancelled), across all
	// dates.
	ListBlockingReservations(
		ctx context.Context,
		staffID uint,
	) ([]models.Reservation, error)

	// -------- Reservation (create / conflict) --------

	// CreateReservationWithServices persists the reservation and one link row
	// per service id, in order, as a single transaction. Inside the same
	// transaction it re-asserts that no blocking reservation overlaps the
	// slot; on a race loss it returns the time_conflict business error and
	// nothing is written.
	CreateReservationWithServices(
		ctx context.Context,
		res *models.Reservation,
		serviceIDs []uint,
	) error

	// -------- Reservation (state change) --------
	GetReservationByID(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// -------- Reads --------
	ListServicesForReservation(
		ctx context.Context,
		reservationID uint,
	) ([]models.Service, error)

	ListReservationsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Reservation, error)

	ListReservationsForStaffPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	ListReservationsForBusiness(
		ctx context.Context,
		businessID uint,
	) ([]models.Reservation, error)
}
