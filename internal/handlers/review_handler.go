package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/macgonzales94/Felicita/internal/audit"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	reviews *review.Reviews
	audit   *audit.Dispatcher
}

func NewReviewHandler(
	reviews *review.Reviews,
	dispatcher *audit.Dispatcher,
) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		audit:   dispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ReviewRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// ======================================================
// CLIENT
// ======================================================

func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review data.")
		return
	}

	created, err := h.reviews.Create(c.Request.Context(), review.CreateInput{
		CustomerID: userID,
		ServiceID:  req.ServiceID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeDomainError(c, err, "Could not create review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: created.Service.BusinessID,
		UserID:     &userID,
		Action:     "review_created",
		Entity:     "review",
		EntityID:   &created.ID,
	})

	c.JSON(http.StatusCreated, created)
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	reviews, err := h.reviews.ForCustomer(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ReviewHandler) ListForService(c *gin.Context) {
	serviceID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	rows, err := h.reviews.ListForService(c.Request.Context(), serviceID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reviews.")
		return
	}

	httpresp.List(c, rows)
}

func (h *ReviewHandler) ServiceStats(c *gin.Context) {
	serviceID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	stats, err := h.reviews.Stats(c.Request.Context(), serviceID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not compute review stats.")
		return
	}

	httpresp.OK(c, stats)
}

func (h *ReviewHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if limit < 1 || limit > 20 {
		limit = 6
	}

	rows, err := h.reviews.Featured(c.Request.Context(), limit)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list featured reviews.")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// OWNER
// ======================================================

func (h *ReviewHandler) ListForBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		value := raw == "true"
		approved = &value
	}

	reviews, err := h.reviews.ForBusiness(c.Request.Context(), businessID, approved)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Approve(c *gin.Context) {
	h.moderate(c, true)
}

func (h *ReviewHandler) Reject(c *gin.Context) {
	h.moderate(c, false)
}

func (h *ReviewHandler) moderate(c *gin.Context, approved bool) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	reviewID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid review id.")
		return
	}

	var (
		updated *models.Review
		err     error
	)
	if approved {
		updated, err = h.reviews.Approve(c.Request.Context(), businessID, reviewID)
	} else {
		updated, err = h.reviews.Reject(c.Request.Context(), businessID, reviewID)
	}
	if err != nil {
		writeDomainError(c, err, "Could not moderate review.")
		return
	}

	action := "review_rejected"
	if approved {
		action = "review_approved"
	}
	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     action,
		Entity:     "review",
		EntityID:   &updated.ID,
	})

	httpresp.OK(c, updated)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ReviewHandler) ListAll(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		value := raw == "true"
		approved = &value
	}

	reviews, err := h.reviews.ForBusiness(c.Request.Context(), 0, approved)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid review id.")
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), reviewID); err != nil {
		writeDomainError(c, err, "Could not delete review.")
		return
	}

	c.Status(http.StatusNoContent)
}
