package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ===============================
// Reviews
// ===============================

// Reviews manages the client review lifecycle: a client submits one against
// a service, the business owner moderates it, and only approved reviews
// reach the public surface.
type Reviews struct {
	db *gorm.DB
}

func NewReviews(db *gorm.DB) *Reviews {
	return &Reviews{db: db}
}

// Row is a review projected for the public surface: the rating, the words,
// and who said them. Moderation state never leaks here.
type Row struct {
	ID         uint      `json:"id"`
	ClientName string    `json:"client_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateInput struct {
	CustomerID uint
	ServiceID  uint
	Rating     int
	Comment    string
}

// ----------------------------------
// Submission
// ----------------------------------

// Create stores the review unapproved; it stays invisible until the owner
// moderates it.
func (r *Reviews) Create(
	ctx context.Context,
	in CreateInput,
) (*models.Review, error) {

	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, httperr.ErrBusiness("empty_comment")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	var customer models.User
	if err := r.db.WithContext(ctx).First(&customer, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("customer_not_found")
		}
		return nil, err
	}

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, in.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	review := models.Review{
		CustomerID: customer.ID,
		ServiceID:  svc.ID,
		Rating:     in.Rating,
		Comment:    comment,
		Approved:   false,
	}
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, err
	}

	review.Customer = customer
	review.Service = svc
	return &review, nil
}

// ----------------------------------
// Public reads (approved only)
// ----------------------------------

func (r *Reviews) ListForService(
	ctx context.Context,
	serviceID uint,
) ([]Row, error) {

	var rows []Row
	if err := r.approvedRows(ctx).
		Where("reviews.service_id = ?", serviceID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Featured picks the best-rated approved reviews, newest first within a
// rating, for the landing surface.
func (r *Reviews) Featured(ctx context.Context, limit int) ([]Row, error) {
	var rows []Row
	if err := r.approvedRows(ctx).
		Order("reviews.rating DESC, reviews.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Reviews) approvedRows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select(
			"reviews.id, users.full_name AS client_name, reviews.rating, " +
				"reviews.comment, reviews.created_at",
		).
		Joins("JOIN users ON users.id = reviews.customer_id").
		Where("reviews.approved = ?", true)
}

// ServiceStats aggregates the approved reviews of one service: the average
// rating, the total, and how many landed on each star.
type ServiceStats struct {
	Average      float64       `json:"average"`
	Total        int64         `json:"total"`
	Distribution map[int]int64 `json:"distribution"`
}

func (r *Reviews) Stats(
	ctx context.Context,
	serviceID uint,
) (ServiceStats, error) {

	var buckets []struct {
		Rating int
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("service_id = ? AND approved = ?", serviceID, true).
		Group("rating").
		Scan(&buckets).Error; err != nil {
		return ServiceStats{}, err
	}

	stats := ServiceStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := int64(0)
	for _, b := range buckets {
		stats.Distribution[b.Rating] = b.Count
		stats.Total += b.Count
		sum += int64(b.Rating) * b.Count
	}
	if stats.Total > 0 {
		stats.Average = float64(sum) / float64(stats.Total)
	}
	return stats, nil
}

// ----------------------------------
// Private reads
// ----------------------------------

// ForCustomer lists everything a client wrote, moderation state included.
func (r *Reviews) ForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Review, error) {

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ForBusiness is the owner's moderation queue. businessID 0 lifts the scope
// for platform admins; approved filters when non-nil.
func (r *Reviews) ForBusiness(
	ctx context.Context,
	businessID uint,
	approved *bool,
) ([]models.Review, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*").
		Joins("JOIN services ON services.id = reviews.service_id").
		Preload("Customer").
		Preload("Service").
		Order("reviews.created_at DESC")

	if businessID != 0 {
		q = q.Where("services.business_id = ?", businessID)
	}
	if approved != nil {
		q = q.Where("reviews.approved = ?", *approved)
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ----------------------------------
// Owner moderation
// ----------------------------------

func (r *Reviews) Approve(
	ctx context.Context,
	businessID uint,
	reviewID uint,
) (*models.Review, error) {
	return r.moderate(ctx, businessID, reviewID, true)
}

func (r *Reviews) Reject(
	ctx context.Context,
	businessID uint,
	reviewID uint,
) (*models.Review, error) {
	return r.moderate(ctx, businessID, reviewID, false)
}

func (r *Reviews) moderate(
	ctx context.Context,
	businessID uint,
	reviewID uint,
	approved bool,
) (*models.Review, error) {

	review, err := r.inBusiness(ctx, businessID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Approved = approved
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Reviews) inBusiness(
	ctx context.Context,
	businessID uint,
	reviewID uint,
) (*models.Review, error) {

	var review models.Review
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*").
		Joins("JOIN services ON services.id = reviews.service_id").
		Where("reviews.id = ? AND services.business_id = ?", reviewID, businessID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("review_not_found")
		}
		return nil, err
	}
	return &review, nil
}

// ----------------------------------
// Admin
// ----------------------------------

func (r *Reviews) Delete(ctx context.Context, reviewID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return httperr.ErrBusiness("review_not_found")
	}
	return nil
}
