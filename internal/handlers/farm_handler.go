package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/souviksingh11/farmmate/internal/audit"
	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/middleware"
	"github.com/souviksingh11/farmmate/internal/models"
)

type FarmHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFarmHandler(repo domain.Repository, auditDispatcher *audit.Dispatcher) *FarmHandler {
	return &FarmHandler{repo: repo, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateFarmRequest struct {
	Name        string   `json:"name" binding:"required"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Address     string   `json:"address"`
	AreaInAcres float64  `json:"areaInAcres"`
	Crops       []string `json:"crops"`
}

type UpdateFarmRequest struct {
	Name        *string   `json:"name,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	Address     *string   `json:"address,omitempty"`
	AreaInAcres *float64  `json:"areaInAcres,omitempty"`
	Crops       *[]string `json:"crops,omitempty"`
}

// --------- Handlers ---------

func (h *FarmHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	farms, err := h.repo.ListFarmsByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_farms", "Failed to list farms")
		return
	}

	c.JSON(http.StatusOK, farms)
}

func (h *FarmHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	farm := models.Farm{
		OwnerID:         userID,
		Name:            req.Name,
		LocationLat:     req.Lat,
		LocationLng:     req.Lng,
		LocationAddress: req.Address,
		AreaInAcres:     req.AreaInAcres,
		Crops:           req.Crops,
	}

	if err := h.repo.CreateFarm(c.Request.Context(), &farm); err != nil {
		httperr.Internal(c, "failed_to_create_farm", "Failed to create farm")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "farm_created",
		Entity:   "farm",
		EntityID: &farm.ID,
	})

	c.JSON(http.StatusCreated, farm)
}

func (h *FarmHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	farmID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "farm_not_found", "Farm not found")
		return
	}

	farm, err := h.repo.GetOwnedFarm(c.Request.Context(), userID, farmID)
	if err != nil {
		if httperr.IsBusiness(err, "farm_not_found") {
			httperr.NotFound(c, "farm_not_found", "Farm not found")
			return
		}
		httperr.Internal(c, "failed_to_get_farm", "Failed to get farm")
		return
	}

	var req UpdateFarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		farm.Name = *req.Name
	}
	if req.Lat != nil {
		farm.LocationLat = *req.Lat
	}
	if req.Lng != nil {
		farm.LocationLng = *req.Lng
	}
	if req.Address != nil {
		farm.LocationAddress = *req.Address
	}
	if req.AreaInAcres != nil {
		farm.AreaInAcres = *req.AreaInAcres
	}
	if req.Crops != nil {
		farm.Crops = *req.Crops
	}

	if err := h.repo.UpdateFarm(c.Request.Context(), farm); err != nil {
		httperr.Internal(c, "failed_to_update_farm", "Failed to update farm")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "farm_updated",
		Entity:   "farm",
		EntityID: &farm.ID,
	})

	c.JSON(http.StatusOK, farm)
}

// Delete removes an owned farm. Scans and plans that reference it keep
// their dangling advisory reference.
func (h *FarmHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	farmID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "farm_not_found", "Farm not found")
		return
	}

	if err := h.repo.DeleteOwnedFarm(c.Request.Context(), userID, farmID); err != nil {
		if httperr.IsBusiness(err, "farm_not_found") {
			httperr.NotFound(c, "farm_not_found", "Farm not found")
			return
		}
		httperr.Internal(c, "failed_to_delete_farm", "Failed to delete farm")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "farm_deleted",
		Entity:   "farm",
		EntityID: &farmID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
