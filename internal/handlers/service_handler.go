package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/audit"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{
		db:    db,
		audit: dispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	CategoryID  *uint   `json:"category_id"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var services []models.Service
	if err := h.db.
		Preload("Category").
		Where("business_id = ?", businessID).
		Order("name").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	if !h.categoryExists(c, req.CategoryID) {
		return
	}

	service := models.Service{
		BusinessID:  businessID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Image:       req.Image,
		Featured:    req.Featured,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "service_created",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	service, ok := h.serviceInBusiness(c, businessID)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	if !h.categoryExists(c, req.CategoryID) {
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.DurationMin = req.DurationMin
	service.CategoryID = req.CategoryID
	service.Image = req.Image
	service.Featured = req.Featured

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update service.")
		return
	}

	httpresp.OK(c, service)
}

// Deactivate hides the service from the catalog. Reservation history keeps
// pointing at it, so services are never hard-deleted.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	service, ok := h.serviceInBusiness(c, businessID)
	if !ok {
		return
	}

	service.Active = false
	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not deactivate service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "service_deactivated",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Activate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	service, ok := h.serviceInBusiness(c, businessID)
	if !ok {
		return
	}

	service.Active = true
	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not activate service.")
		return
	}

	httpresp.OK(c, service)
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) serviceInBusiness(c *gin.Context, businessID uint) (*models.Service, bool) {
	serviceID, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return nil, false
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}
	return &service, true
}

func (h *ServiceHandler) categoryExists(c *gin.Context, categoryID *uint) bool {
	if categoryID == nil {
		return true
	}

	var category models.Category
	if err := h.db.First(&category, *categoryID).Error; err != nil {
		httperr.BadRequest(c, "category_not_found", "Category not found.")
		return false
	}
	return true
}
