package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AdminHandler is the platform back office: business verification and
// suspension, the shared category catalog, and user listing.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ======================================================
// BUSINESSES
// ======================================================

func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	q := h.db.Preload("User")

	if state := c.Query("state"); state != "" {
		q = q.Where("state = ?", state)
	}

	var businesses []models.Business
	if err := q.Order("registered_at DESC").Find(&businesses).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list businesses.")
		return
	}

	httpresp.List(c, businesses)
}

func (h *AdminHandler) VerifyBusiness(c *gin.Context) {
	business, ok := h.loadBusiness(c)
	if !ok {
		return
	}

	business.Verified = true
	if err := h.db.Save(business).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not verify business.")
		return
	}

	httpresp.OK(c, business)
}

func (h *AdminHandler) SuspendBusiness(c *gin.Context) {
	business, ok := h.loadBusiness(c)
	if !ok {
		return
	}

	business.State = models.BusinessSuspended
	if err := h.db.Save(business).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not suspend business.")
		return
	}

	httpresp.OK(c, business)
}

func (h *AdminHandler) ReactivateBusiness(c *gin.Context) {
	business, ok := h.loadBusiness(c)
	if !ok {
		return
	}

	business.State = models.BusinessActive
	if err := h.db.Save(business).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not reactivate business.")
		return
	}

	httpresp.OK(c, business)
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	q := h.db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

// ======================================================
// CATEGORIES
// ======================================================

func (h *AdminHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name").Find(&categories).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list categories.")
		return
	}

	httpresp.List(c, categories)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid category data.")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Conflict(c, "category_exists", "A category with that name already exists.")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid category id.")
		return
	}

	var category models.Category
	if err := h.db.First(&category, categoryID).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid category data.")
		return
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update category.")
		return
	}

	httpresp.OK(c, category)
}

func (h *AdminHandler) DeactivateCategory(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid category id.")
		return
	}

	var category models.Category
	if err := h.db.First(&category, categoryID).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	category.Active = false
	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not deactivate category.")
		return
	}

	httpresp.OK(c, category)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AdminHandler) loadBusiness(c *gin.Context) (*models.Business, bool) {
	businessID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return nil, false
	}

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil, false
	}
	return &business, true
}
