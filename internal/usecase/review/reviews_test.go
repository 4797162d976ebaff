package review

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/macgonzales94/Felicita/internal/db"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
)

type reviewFixture struct {
	db       *gorm.DB
	business models.Business
	customer models.User
	cut      models.Service
	color    models.Service
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	database, err := dbpkg.Open(filepath.Join(t.TempDir(), "reviews.db"))
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(database))

	f := &reviewFixture{db: database}

	owner := models.User{
		Username: "owner", Email: "owner@example.com",
		PasswordHash: "x", Role: models.RoleOwner,
	}
	require.NoError(t, database.Create(&owner).Error)

	f.customer = models.User{
		Username: "carla", Email: "carla@example.com",
		PasswordHash: "x", FullName: "Carla Reyes", Role: models.RoleClient,
	}
	require.NoError(t, database.Create(&f.customer).Error)

	f.business = models.Business{
		UserID: owner.ID, Name: "Felicita Salon",
		Timezone: "America/Lima", State: models.BusinessActive,
		RegisteredAt: time.Now(),
	}
	require.NoError(t, database.Create(&f.business).Error)

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

func (f *reviewFixture) submit(
	t *testing.T,
	uc *Reviews,
	serviceID uint,
	rating int,
	comment string,
) *models.Review {
	t.Helper()

	created, err := uc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		ServiceID:  serviceID,
		Rating:     rating,
		Comment:    comment,
	})
	require.NoError(t, err)
	return created
}

func TestCreateReviewValidatesInput(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	_, err := uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID, ServiceID: f.cut.ID,
		Rating: 5, Comment: "   ",
	})
	assert.True(t, httperr.IsBusiness(err, "empty_comment"))

	for _, rating := range []int{0, 6, -1} {
		_, err = uc.Create(ctx, CreateInput{
			CustomerID: f.customer.ID, ServiceID: f.cut.ID,
			Rating: rating, Comment: "Great cut",
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_rating"))
	}

	_, err = uc.Create(ctx, CreateInput{
		CustomerID: f.customer.ID, ServiceID: 9999,
		Rating: 5, Comment: "Great cut",
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	_, err = uc.Create(ctx, CreateInput{
		CustomerID: 9999, ServiceID: f.cut.ID,
		Rating: 5, Comment: "Great cut",
	})
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))
}

func TestCreateReviewStartsUnapproved(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)

	created := f.submit(t, uc, f.cut.ID, 5, "  Great cut  ")

	assert.False(t, created.Approved)
	assert.Equal(t, "Great cut", created.Comment)
	assert.Equal(t, f.business.ID, created.Service.BusinessID)

	// Not public until the owner approves it.
	rows, err := uc.ListForService(context.Background(), f.cut.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestApprovalControlsVisibility(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	first := f.submit(t, uc, f.cut.ID, 5, "Great cut")
	f.submit(t, uc, f.cut.ID, 2, "Too long a wait")

	// Another owner cannot touch it.
	_, err := uc.Approve(ctx, f.business.ID+1, first.ID)
	assert.True(t, httperr.IsBusiness(err, "review_not_found"))

	approved, err := uc.Approve(ctx, f.business.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	rows, err := uc.ListForService(ctx, f.cut.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Carla Reyes", rows[0].ClientName)
	assert.Equal(t, 5, rows[0].Rating)

	// Rejection takes it back off the public surface.
	_, err = uc.Reject(ctx, f.business.ID, first.ID)
	require.NoError(t, err)

	rows, err = uc.ListForService(ctx, f.cut.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFeaturedOrdersByRating(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	for _, rating := range []int{3, 5, 4} {
		r := f.submit(t, uc, f.cut.ID, rating, "Review")
		_, err := uc.Approve(ctx, f.business.ID, r.ID)
		require.NoError(t, err)
	}
	f.submit(t, uc, f.color.ID, 5, "Pending, stays out")

	rows, err := uc.Featured(ctx, 6)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 5, rows[0].Rating)
	assert.Equal(t, 4, rows[1].Rating)
	assert.Equal(t, 3, rows[2].Rating)

	rows, err = uc.Featured(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestServiceStatsAggregatesApprovedOnly(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	for _, rating := range []int{5, 5, 4} {
		r := f.submit(t, uc, f.cut.ID, rating, "Review")
		_, err := uc.Approve(ctx, f.business.ID, r.ID)
		require.NoError(t, err)
	}
	f.submit(t, uc, f.cut.ID, 1, "Pending, stays out")

	stats, err := uc.Stats(ctx, f.cut.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	assert.InDelta(t, 14.0/3.0, stats.Average, 0.001)
	assert.EqualValues(t, 2, stats.Distribution[5])
	assert.EqualValues(t, 1, stats.Distribution[4])
	assert.EqualValues(t, 0, stats.Distribution[1])

	// No approved reviews, flat stats.
	stats, err = uc.Stats(ctx, f.color.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.Total)
	assert.InDelta(t, 0.0, stats.Average, 0.001)
}

func TestForBusinessFiltersModeration(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	first := f.submit(t, uc, f.cut.ID, 5, "Great cut")
	f.submit(t, uc, f.color.ID, 3, "Fine")

	_, err := uc.Approve(ctx, f.business.ID, first.ID)
	require.NoError(t, err)

	all, err := uc.ForBusiness(ctx, f.business.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := false
	queue, err := uc.ForBusiness(ctx, f.business.ID, &pending)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, f.color.ID, queue[0].ServiceID)
	assert.Equal(t, "Carla Reyes", queue[0].Customer.FullName)

	// businessID 0 lifts the scope.
	platform, err := uc.ForBusiness(ctx, 0, nil)
	require.NoError(t, err)
	assert.Len(t, platform, 2)

	other, err := uc.ForBusiness(ctx, f.business.ID+1, nil)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteReview(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	created := f.submit(t, uc, f.cut.ID, 5, "Great cut")

	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, 9999), "review_not_found"))

	require.NoError(t, uc.Delete(ctx, created.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestForCustomerListsOwnReviews(t *testing.T) {
	f := newReviewFixture(t)
	uc := NewReviews(f.db)
	ctx := context.Background()

	f.submit(t, uc, f.cut.ID, 5, "Great cut")
	f.submit(t, uc, f.color.ID, 4, "Nice color")

	mine, err := uc.ForCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.NotEmpty(t, mine[0].Service.Name)

	none, err := uc.ForCustomer(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
