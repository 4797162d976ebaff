package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Customer / Staff
// --------------------------------------------------

func (r *ReservationGormRepository) GetCustomerByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ReservationGormRepository) GetStaffByID(
	ctx context.Context,
	id uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *ReservationGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var business models.Business
	if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *ReservationGormRepository) GetServicesByIDs(
	ctx context.Context,
	ids []uint,
) (map[uint]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]models.Service, len(services))
	for _, s := range services {
		out[s.ID] = s
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) ListWindowsForDate(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]models.AvailabilityWindow, error) {

	// Compare the date column by calendar value. Timestamp parameters get
	// cast at the session time zone on postgres and can land on the wrong
	// day when the business time zone differs from it.
	day := date.Format("2006-01-02")
	next := date.AddDate(0, 0, 1).Format("2006-01-02")

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where(
			"staff_member_id = ? AND date >= ? AND date < ?",
			staffID, day, next,
		).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *ReservationGormRepository) ListBlockingReservations(
	ctx context.Context,
	staffID uint,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"staff_member_id = ? AND status <> ?",
			staffID, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservationWithServices(
	ctx context.Context,
	res *models.Reservation,
	serviceIDs []uint,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx.Model(&models.Reservation{})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var conflicts int64
		if err := q.
			Where(
				"staff_member_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				res.StaffMemberID,
				string(domain.StatusCancelled),
				res.EndTime,
				res.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}

		if conflicts > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		if err := tx.Create(res).Error; err != nil {
			return err
		}

		for i, serviceID := range serviceIDs {
			link := models.ReservationService{
				ReservationID: res.ID,
				ServiceID:     serviceID,
				Position:      i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if isConflictViolation(err) {
			return httperr.ErrBusiness("time_conflict")
		}
		return err
	}

	return nil
}

// isConflictViolation recognizes postgres unique (23505) and exclusion
// (23P01) violations raised by a concurrent writer.
func isConflictViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservationByID(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ReservationGormRepository) ListServicesForReservation(
	ctx context.Context,
	reservationID uint,
) ([]models.Service, error) {

	var links []models.ReservationService
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("reservation_id = ?", reservationID).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	services := make([]models.Service, 0, len(links))
	for _, link := range links {
		services = append(services, link.Service)
	}
	return services, nil
}

func (r *ReservationGormRepository) ListReservationsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("StaffMember").
		Where("customer_id = ?", customerID).
		Order("start_time DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationGormRepository) ListReservationsForStaffPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where(
			"staff_member_id = ? AND start_time >= ? AND start_time < ?",
			staffID, start, end,
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationGormRepository) ListReservationsForBusiness(
	ctx context.Context,
	businessID uint,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("StaffMember").
		Joins("JOIN staff_members ON staff_members.id = reservations.staff_member_id").
		Where("staff_members.business_id = ?", businessID).
		Order("reservations.start_time DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
