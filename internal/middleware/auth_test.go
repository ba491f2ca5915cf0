package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/souviksingh11/farmmate/internal/config"
	dbpkg "github.com/souviksingh11/farmmate/internal/db"
	"github.com/souviksingh11/farmmate/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, dbpkg.Migrate(db))

	user := &models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)

	cfg := &config.Config{JWTSecret: "test-secret"}

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(db, cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet(ContextUserID)})
	})
	r.GET("/admin-only", AuthMiddleware(db, cfg), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r, db, cfg, user
}

func get(r *gin.Engine, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, db, cfg, user := setup(t)

	token, err := IssueToken(cfg, user.ID)
	require.NoError(t, err)

	t.Run("cookie accepted", func(t *testing.T) {
		w := get(r, "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bearer header accepted", func(t *testing.T) {
		w := get(r, "/whoami", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		w := get(r, "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
			req.Header.Set("Authorization", "Bearer not-a-token")
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := get(r, "/whoami", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := get(r, "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := IssueToken(&config.Config{JWTSecret: "other"}, user.ID)
		require.NoError(t, err)

		w := get(r, "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: forged})
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := Claims{
			UserID: user.ID,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)

		w := get(r, "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: expired})
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost := &models.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x"}
		require.NoError(t, db.Create(ghost).Error)
		ghostToken, err := IssueToken(cfg, ghost.ID)
		require.NoError(t, err)
		require.NoError(t, db.Delete(ghost).Error)

		w := get(r, "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: ghostToken})
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "user_not_found")
	})
}

func TestRequireRoles(t *testing.T) {
	r, db, cfg, user := setup(t)

	token, err := IssueToken(cfg, user.ID)
	require.NoError(t, err)

	w := get(r, "/admin-only", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, db.Model(user).Update("role", models.RoleAdmin).Error)

	w = get(r, "/admin-only", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
