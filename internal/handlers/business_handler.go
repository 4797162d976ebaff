package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/httpresp"
	"github.com/macgonzales94/Felicita/internal/middleware"
	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	ContactEmail string `json:"contact_email"`
	Type         string `json:"type"`
	Timezone     string `json:"timezone"`
}

func (h *BusinessHandler) Get(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load business.")
		return
	}

	httpresp.OK(c, business)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load business.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business data.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	business.Name = req.Name
	business.Description = req.Description
	business.Address = req.Address
	business.Phone = req.Phone
	business.ContactEmail = req.ContactEmail
	business.Type = req.Type
	if req.Timezone != "" {
		business.Timezone = req.Timezone
	}

	if err := h.db.Save(&business).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update business.")
		return
	}

	httpresp.OK(c, business)
}
