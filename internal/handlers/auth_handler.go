package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/macgonzales94/Felicita/internal/config"
	"github.com/macgonzales94/Felicita/internal/httperr"
	"github.com/macgonzales94/Felicita/internal/models"
	"github.com/macgonzales94/Felicita/internal/timezone"
	"github.com/macgonzales94/Felicita/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

type RegisterBusinessRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`

	BusinessName    string `json:"business_name" binding:"required"`
	BusinessAddress string `json:"business_address"`
	BusinessPhone   string `json:"business_phone"`
	BusinessType    string `json:"business_type"`
	Timezone        string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not exist.")
		return
	}

	var existing models.User
	if err := h.db.Where("email = ? OR username = ?", email, req.Username).First(&existing).Error; err == nil {
		httperr.Conflict(c, "user_exists", "Email or username already registered.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failed", "Could not process password.")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         models.RoleClient,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_register", "Could not create account.")
		return
	}

	token, err := h.issueToken(&user, nil)
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not issue token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) RegisterBusiness(c *gin.Context) {
	var req RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not exist.")
		return
	}

	var existing models.User
	if err := h.db.Where("email = ? OR username = ?", email, req.Username).First(&existing).Error; err == nil {
		httperr.Conflict(c, "user_exists", "Email or username already registered.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failed", "Could not process password.")
		return
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	user := models.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         models.RoleOwner,
	}
	business := models.Business{
		Name:         req.BusinessName,
		Address:      req.BusinessAddress,
		Phone:        req.BusinessPhone,
		Type:         req.BusinessType,
		Timezone:     tz,
		State:        models.BusinessActive,
		RegisteredAt: time.Now(),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		business.UserID = user.ID
		return tx.Create(&business).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_register", "Could not create business account.")
		return
	}

	token, err := h.issueToken(&user, &business.ID)
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not issue token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user, "business": business})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid credentials format.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong email or password.")
		return
	}

	var businessID *uint
	if user.Role == models.RoleOwner {
		var business models.Business
		if err := h.db.Where("user_id = ?", user.ID).First(&business).Error; err == nil {
			businessID = &business.ID
		}
	}

	token, err := h.issueToken(&user, businessID)
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// --------- Token ---------

func (h *AuthHandler) issueToken(user *models.User, businessID *uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if businessID != nil {
		claims["businessId"] = float64(*businessID)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
