package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/souviksingh11/farmmate/internal/config"
	dbpkg "github.com/souviksingh11/farmmate/internal/db"
	"github.com/souviksingh11/farmmate/internal/models"
	"github.com/souviksingh11/farmmate/internal/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		Env:          "test",
		InferenceURL: "http://127.0.0.1:0", // unreachable unless a test overrides it
	}
}

// newTestApp wires the full router against an in-memory DB. Tests that
// need a live inference upstream set cfg.InferenceURL to an
// httptest.Server first.
func newTestApp(t *testing.T, cfg *config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, nil)
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser creates an account through the public endpoint and
// returns the session cookie the server issued.
func registerUser(t *testing.T, r *gin.Engine, name, email, password string) *http.Cookie {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func promoteToAdmin(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin).Error)
}

// fakeInference stands in for the prediction service.
func fakeInference(t *testing.T, detect, recommend http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	if detect != nil {
		mux.HandleFunc("/api/detect-disease", detect)
	}
	if recommend != nil {
		mux.HandleFunc("/api/recommend-fertilizer", recommend)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func jsonResponse(payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}
