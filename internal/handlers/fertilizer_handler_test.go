package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souviksingh11/farmmate/internal/models"
)

func TestCreateFertilizerPlan(t *testing.T) {
	srv := fakeInference(t, nil, jsonResponse(gin.H{
		"crop":       "tomato",
		"soil":       "loamy",
		"nutrients":  gin.H{"N": 40.0, "P": 25.5, "K": 30.0},
		"fertilizer": "NPK 19-19-19",
		"why":        "Balances all three macronutrients for fruiting crops.",
		"application": []string{
			"Apply 50 kg per acre at transplanting.",
			"Repeat after 30 days.",
		},
		"precautions": []string{
			"Do not apply before heavy rain.",
		},
	}))

	cfg := newTestConfig()
	cfg.InferenceURL = srv.URL
	r, _ := newTestApp(t, cfg)
	cookie := registerUser(t, r, "Asha", "asha@example.com", "secret123")

	w := doJSON(r, http.MethodPost, "/api/fertilizer", gin.H{
		"crop": "tomato",
		"soil": "loamy",
		"ph":   6.5,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var plan models.FertilizerPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	assert.Equal(t, "tomato", plan.Crop)
	assert.Equal(t, 40.0, plan.SoilN)
	assert.Equal(t, 25.5, plan.SoilP)
	assert.Equal(t, 30.0, plan.SoilK)

	// The stored text is the display document, bullets and all.
	rec := plan.Recommendation
	assert.Contains(t, rec, "Crop: tomato")
	assert.Contains(t, rec, "Soil Type: loamy")
	assert.Contains(t, rec, "• Nitrogen (N): 40")
	assert.Contains(t, rec, "• Phosphorus (P): 25.5")
	assert.Contains(t, rec, "Recommended Fertilizer:\nNPK 19-19-19")
	assert.Contains(t, rec, "Why this fertilizer?")
	assert.Contains(t, rec, "• Apply 50 kg per acre at transplanting.")
	assert.Contains(t, rec, "Precautions:\n• Do not apply before heavy rain.")
}

func TestCreateFertilizerPlan_CropRequired(t *testing.T) {
	r, _ := newTestApp(t, newTestConfig())
	cookie := registerUser(t, r, "Asha", "asha@example.com", "secret123")

	for _, crop := range []string{"", "   "} {
		w := doJSON(r, http.MethodPost, "/api/fertilizer", gin.H{
			"crop": crop,
			"soil": "loamy",
		}, cookie)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "crop_required", body["error_code"])
		assert.Equal(t, "Crop is required", body["message"])
	}
}

func TestCreateFertilizerPlan_InferenceDown(t *testing.T) {
	r, db := newTestApp(t, newTestConfig())
	cookie := registerUser(t, r, "Asha", "asha@example.com", "secret123")

	w := doJSON(r, http.MethodPost, "/api/fertilizer", gin.H{"crop": "tomato"}, cookie)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "inference_unavailable", decodeBody(t, w)["error_code"])

	var count int64
	require.NoError(t, db.Model(&models.FertilizerPlan{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListFertilizerPlans_OwnerScoped(t *testing.T) {
	srv := fakeInference(t, nil, jsonResponse(gin.H{
		"crop":       "rice",
		"soil":       "clay",
		"nutrients":  gin.H{"N": 10.0, "P": 10.0, "K": 10.0},
		"fertilizer": "Urea",
		"why":        "Nitrogen boost.",
	}))

	cfg := newTestConfig()
	cfg.InferenceURL = srv.URL
	r, _ := newTestApp(t, cfg)
	mine := registerUser(t, r, "Asha", "asha@example.com", "secret123")
	theirs := registerUser(t, r, "Ravi", "ravi@example.com", "secret123")

	w := doJSON(r, http.MethodPost, "/api/fertilizer", gin.H{"crop": "rice"}, mine)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.FertilizerPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPost, "/api/fertilizer", gin.H{"crop": "rice"}, theirs)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/fertilizer", nil, mine)
	require.Equal(t, http.StatusOK, w.Code)

	var plans []models.FertilizerPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	// The stored recommendation comes back verbatim.
	assert.Equal(t, created.Recommendation, plans[0].Recommendation)
}
