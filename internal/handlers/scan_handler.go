package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/inference"
	"github.com/souviksingh11/farmmate/internal/middleware"
	ucScan "github.com/souviksingh11/farmmate/internal/usecase/scan"
)

type ScanHandler struct {
	createUC *ucScan.CreateScan
	listUC   *ucScan.ListScans
}

func NewScanHandler(createUC *ucScan.CreateScan, listUC *ucScan.ListScans) *ScanHandler {
	return &ScanHandler{createUC: createUC, listUC: listUC}
}

// --------- Requests ---------

type CreateScanRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	FarmID   *uint  `json:"farm_id"`
	Meta     struct {
		Crop string `json:"crop"`
	} `json:"meta"`
}

// --------- Handlers ---------

func (h *ScanHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sc, err := h.createUC.Execute(c.Request.Context(), ucScan.CreateScanInput{
		UserID:   userID,
		FarmID:   req.FarmID,
		ImageURL: req.ImageURL,
		Crop:     req.Meta.Crop,
	})
	if err != nil {
		if errors.Is(err, inference.ErrUnavailable) {
			httperr.Internal(c, "inference_unavailable", "Unable to analyze image")
			return
		}
		httperr.Internal(c, "failed_to_create_scan", "Failed to create scan")
		return
	}

	c.JSON(http.StatusCreated, sc)
}

func (h *ScanHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	scans, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_scans", "Failed to list scans")
		return
	}

	c.JSON(http.StatusOK, scans)
}
