package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/souviksingh11/farmmate/internal/config"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/models"
)

const (
	ContextUser     = "currentUser"
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	// TokenCookie is read before the Authorization header.
	TokenCookie = "token"

	TokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// IssueToken mints the 7-day session credential for a user.
func IssueToken(cfg *config.Config, userID uint) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// SetSessionCookie attaches the credential as an http-only lax cookie,
// Secure outside local development.
func SetSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, int(TokenTTL.Seconds()), "/", "", cfg.Production(), true)
}

func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, "", -1, "/", "", cfg.Production(), true)
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// AuthMiddleware verifies the session credential and attaches the
// resolved identity to the request context. All failures are 401; the
// error codes stay distinct for logs and clients that care.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			httperr.Unauthorized(c, "missing_token", "Unauthorized")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("auth: rejected token: %v", err)
			httperr.Unauthorized(c, "invalid_token", "Invalid token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "user_not_found", "User not found")
				c.Abort()
				return
			}
			httperr.Internal(c, "internal_error", "Failed to authenticate")
			c.Abort()
			return
		}

		c.Set(ContextUser, &user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

// RequireRoles gates a route group to callers whose role is in the
// allowed set. Runs after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			httperr.Unauthorized(c, "missing_token", "Not authenticated")
			c.Abort()
			return
		}
		role := roleVal.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Forbidden")
		c.Abort()
	}
}

// CurrentUser returns the identity attached by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(ContextUser).(*models.User)
}
