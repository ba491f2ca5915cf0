package handlers

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/souviksingh11/farmmate/internal/audit"
	"github.com/souviksingh11/farmmate/internal/config"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/middleware"
	"github.com/souviksingh11/farmmate/internal/models"
)

const otpTTL = 10 * time.Minute

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, auditDispatcher *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: auditDispatcher}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`

	// Pointers distinguish an absent key from an empty value; both
	// skip assignment once trimmed, which is the contract.
	FarmName *string `json:"farmName"`
	Location *string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// --------- Responses ---------

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"farmName":  user.FarmName,
		"location":  user.Location,
		"avatarUrl": user.AvatarURL,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_taken", "Email already in use")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to register")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}

	if req.FarmName != nil {
		if trimmed := strings.TrimSpace(*req.FarmName); trimmed != "" {
			user.FarmName = trimmed
		}
	}
	if req.Location != nil {
		if trimmed := strings.TrimSpace(*req.Location); trimmed != "" {
			user.Location = trimmed
		}
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Failed to register")
		return
	}

	token, err := middleware.IssueToken(h.config, user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to register")
		return
	}
	middleware.SetSessionCookie(c, h.config, token)

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":  userPayload(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to log in")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := middleware.IssueToken(h.config, user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to log in")
		return
	}
	middleware.SetSessionCookie(c, h.config, token)

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":  userPayload(&user),
		"token": token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.config)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// --------- Password reset ---------

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "email_not_found", "Email not found")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to generate OTP")
		return
	}

	otp, err := generateOTP()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_otp", "Failed to generate OTP")
		return
	}

	expiry := time.Now().Add(otpTTL)
	user.ResetOTP = otp
	user.ResetOTPExpire = &expiry
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to generate OTP")
		return
	}

	// No outbound mail in this system: the OTP travels back in the
	// response body.
	c.JSON(http.StatusOK, gin.H{
		"message": "OTP generated successfully",
		"otp":     otp,
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.BadRequest(c, "invalid_otp", "Invalid or expired OTP")
		return
	}

	if !otpValid(&user, req.OTP) {
		httperr.BadRequest(c, "invalid_otp", "Invalid or expired OTP")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to reset password")
		return
	}

	user.PasswordHash = string(hashed)
	user.ResetOTP = ""
	user.ResetOTPExpire = nil
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to reset password")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_reset",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// generateOTP samples a uniform 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func otpValid(user *models.User, candidate string) bool {
	if user.ResetOTP == "" || user.ResetOTPExpire == nil {
		return false
	}
	if time.Now().After(*user.ResetOTPExpire) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(user.ResetOTP), []byte(candidate)) == 1
}
