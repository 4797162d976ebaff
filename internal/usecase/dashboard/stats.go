package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/macgonzales94/Felicita/internal/domain/reservation"
	"github.com/macgonzales94/Felicita/internal/models"
)

// Stats are the read-only aggregates behind the owner and admin dashboards.
// They never mutate state; stale reads are fine. businessID 0 means
// platform-wide (admin scope).
type Stats struct {
	db *gorm.DB
}

func NewStats(db *gorm.DB) *Stats {
	return &Stats{db: db}
}

// revenueStatuses: only reservations the business will actually charge for.
var revenueStatuses = []string{
	string(domain.StatusConfirmed),
	string(domain.StatusCompleted),
}

func (s *Stats) scoped(q *gorm.DB, businessID uint) *gorm.DB {
	if businessID == 0 {
		return q
	}
	return q.
		Joins("JOIN staff_members ON staff_members.id = reservations.staff_member_id").
		Where("staff_members.business_id = ?", businessID)
}

func (s *Stats) CountReservations(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	q := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("reservations.start_time >= ? AND reservations.start_time < ?", start, end)

	if err := s.scoped(q, businessID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Revenue sums the current price of every service linked to a confirmed or
// completed reservation starting in the range. Prices are read as they are
// now; they are not frozen at booking time.
func (s *Stats) Revenue(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) (float64, error) {

	var total float64
	q := s.db.WithContext(ctx).
		Model(&models.ReservationService{}).
		Joins("JOIN reservations ON reservations.id = reservation_services.reservation_id").
		Joins("JOIN services ON services.id = reservation_services.service_id").
		Where("reservations.status IN ?", revenueStatuses).
		Where("reservations.start_time >= ? AND reservations.start_time < ?", start, end)

	if err := s.scoped(q, businessID).
		Select("COALESCE(SUM(services.price), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

type statusCount struct {
	Status string
	Count  int64
}

func (s *Stats) StatusDistribution(
	ctx context.Context,
	businessID uint,
) (map[string]int64, error) {

	var rows []statusCount
	q := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("reservations.status AS status, COUNT(*) AS count").
		Group("reservations.status")

	if err := s.scoped(q, businessID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// CountByWeekday buckets reservation starts over the past weeks by weekday.
// Bucketing happens here rather than in SQL so the query stays
// dialect-agnostic.
func (s *Stats) CountByWeekday(
	ctx context.Context,
	businessID uint,
	weeks int,
) (map[time.Weekday]int64, error) {

	end := time.Now()
	start := end.AddDate(0, 0, -7*weeks)

	var starts []time.Time
	q := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("reservations.start_time >= ? AND reservations.start_time < ?", start, end)

	if err := s.scoped(q, businessID).
		Pluck("reservations.start_time", &starts).Error; err != nil {
		return nil, err
	}

	out := make(map[time.Weekday]int64, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out[d] = 0
	}
	for _, t := range starts {
		out[t.Weekday()]++
	}
	return out, nil
}

func (s *Stats) RecentReservations(
	ctx context.Context,
	businessID uint,
	limit int,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	q := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Preload("Customer").
		Preload("StaffMember").
		Order("reservations.created_at DESC").
		Limit(limit)

	if err := s.scoped(q, businessID).Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

type ServiceCount struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

func (s *Stats) PopularServices(
	ctx context.Context,
	businessID uint,
	limit int,
) ([]ServiceCount, error) {

	var rows []ServiceCount
	q := s.db.WithContext(ctx).
		Model(&models.ReservationService{}).
		Select("services.id AS service_id, services.name AS name, COUNT(*) AS count").
		Joins("JOIN services ON services.id = reservation_services.service_id").
		Group("services.id, services.name").
		Order("count DESC").
		Limit(limit)

	if businessID != 0 {
		q = q.Where("services.business_id = ?", businessID)
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type ClientCount struct {
	CustomerID uint   `json:"customer_id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// FrequentClients ranks customers by how many non-cancelled reservations
// they hold with the business.
func (s *Stats) FrequentClients(
	ctx context.Context,
	businessID uint,
	limit int,
) ([]ClientCount, error) {

	var rows []ClientCount
	q := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("users.id AS customer_id, users.full_name AS name, COUNT(*) AS count").
		Joins("JOIN users ON users.id = reservations.customer_id").
		Where("reservations.status <> ?", "cancelled").
		Group("users.id, users.full_name").
		Order("count DESC").
		Limit(limit)

	if err := s.scoped(q, businessID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Stats) TotalClients(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleClient).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Stats) ActiveServices(
	ctx context.Context,
	businessID uint,
) (int64, error) {

	var count int64
	q := s.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("active = ?", true)

	if businessID != 0 {
		q = q.Where("business_id = ?", businessID)
	}

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
