package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/inference"
	"github.com/souviksingh11/farmmate/internal/middleware"
	ucFertilizer "github.com/souviksingh11/farmmate/internal/usecase/fertilizer"
)

type FertilizerHandler struct {
	createUC *ucFertilizer.CreatePlan
	listUC   *ucFertilizer.ListPlans
}

func NewFertilizerHandler(
	createUC *ucFertilizer.CreatePlan,
	listUC *ucFertilizer.ListPlans,
) *FertilizerHandler {
	return &FertilizerHandler{createUC: createUC, listUC: listUC}
}

// --------- Requests ---------

type CreatePlanRequest struct {
	Crop string   `json:"crop"`
	Soil string   `json:"soil"`
	PH   *float64 `json:"ph"`
	N    *float64 `json:"N"`
	P    *float64 `json:"P"`
	K    *float64 `json:"K"`
	Size *float64 `json:"size"`
}

// --------- Handlers ---------

func (h *FertilizerHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	plan, err := h.createUC.Execute(c.Request.Context(), ucFertilizer.CreatePlanInput{
		UserID: userID,
		Crop:   req.Crop,
		Soil:   req.Soil,
		PH:     req.PH,
		N:      req.N,
		P:      req.P,
		K:      req.K,
		Size:   req.Size,
	})
	if err != nil {
		if httperr.IsBusiness(err, "crop_required") {
			httperr.BadRequest(c, "crop_required", "Crop is required")
			return
		}
		if errors.Is(err, inference.ErrUnavailable) {
			httperr.Internal(c, "inference_unavailable", "Unable to generate recommendation")
			return
		}
		httperr.Internal(c, "failed_to_create_plan", "Failed to create fertilizer plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *FertilizerHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	plans, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Failed to list fertilizer plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}
