package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/souviksingh11/farmmate/internal/audit"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/images"
	"github.com/souviksingh11/farmmate/internal/middleware"
	"github.com/souviksingh11/farmmate/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	FarmName *string `json:"farmName,omitempty"`
	Location *string `json:"location,omitempty"`
}

// --------- Handlers ---------

// UpdateProfile applies a partial update; only keys present in the
// payload are touched.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.FarmName != nil {
		user.FarmName = strings.TrimSpace(*req.FarmName)
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// UploadAvatar accepts a multipart image (field "avatar", ≤5MB),
// re-encodes it and stores it inline on the user row.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "no_file_uploaded", "No file uploaded")
		return
	}

	if fileHeader.Size > images.MaxAvatarBytes {
		httperr.BadRequest(c, "file_too_large", "Avatar must be 5MB or smaller")
		return
	}

	mime := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		httperr.BadRequest(c, "invalid_file_type", "Only image files are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, images.MaxAvatarBytes+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Failed to read upload")
		return
	}
	if len(data) > images.MaxAvatarBytes {
		httperr.BadRequest(c, "file_too_large", "Avatar must be 5MB or smaller")
		return
	}

	user.AvatarURL = images.ProcessAvatar(data, mime)

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_avatar", "Failed to store avatar")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "avatar_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":      userPayload(user),
		"avatarUrl": user.AvatarURL,
	})
}

func (h *UserHandler) RemoveAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)

	user.AvatarURL = ""
	if err := h.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("avatar_url", "").Error; err != nil {
		httperr.Internal(c, "failed_to_update_avatar", "Failed to remove avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar removed successfully",
		"user":    userPayload(user),
	})
}
