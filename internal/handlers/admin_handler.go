package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/httpresp"
	"github.com/souviksingh11/farmmate/internal/models"
)

const activityLimit = 100

type AdminHandler struct {
	repo domain.Repository
	db   *gorm.DB
}

func NewAdminHandler(repo domain.Repository, db *gorm.DB) *AdminHandler {
	return &AdminHandler{repo: repo, db: db}
}

// --------- DTOs ---------

// activityScan annotates a scan with its owner for the global feed;
// the model itself never serializes the preloaded user.
type activityScan struct {
	models.Scan
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type activityPlan struct {
	models.FertilizerPlan
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// --------- Handlers ---------

func (h *AdminHandler) Overview(c *gin.Context) {
	counts, err := h.repo.Counts(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_overview", "Failed to fetch overview stats")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_users", "Failed to fetch users")
		return
	}
	httpresp.List(c, users)
}

func (h *AdminHandler) UserDetail(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "user_not_found", "User not found")
		return
	}

	user, err := h.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		httperr.Internal(c, "failed_to_fetch_user", "Failed to fetch user details")
		return
	}

	scans, err := h.repo.ListScansByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_user", "Failed to fetch user details")
		return
	}

	plans, err := h.repo.ListPlansByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_user", "Failed to fetch user details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"scans": scans,
		"plans": plans,
	})
}

// Activity is the only read path that crosses ownership boundaries:
// the most recent scans and plans across all users.
func (h *AdminHandler) Activity(c *gin.Context) {
	scans, err := h.repo.RecentScans(c.Request.Context(), activityLimit)
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_activity", "Failed to fetch activity")
		return
	}

	plans, err := h.repo.RecentPlans(c.Request.Context(), activityLimit)
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_activity", "Failed to fetch activity")
		return
	}

	outScans := make([]activityScan, 0, len(scans))
	for _, s := range scans {
		outScans = append(outScans, activityScan{
			Scan:      s,
			UserName:  s.User.Name,
			UserEmail: s.User.Email,
		})
	}

	outPlans := make([]activityPlan, 0, len(plans))
	for _, p := range plans {
		outPlans = append(outPlans, activityPlan{
			FertilizerPlan: p,
			UserName:       p.User.Name,
			UserEmail:      p.User.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"scans": outScans,
		"plans": outPlans,
	})
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.db.
		Order("created_at DESC, id DESC").
		Limit(activityLimit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_fetch_audit_logs", "Failed to fetch audit logs")
		return
	}
	httpresp.List(c, logs)
}

// ExportUsers streams all accounts as an XLSX workbook.
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_users", "Failed to fetch users")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Users"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Email", "Role", "Farm", "Location", "Registered"}
	for i, hname := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hname)
	}

	for row, u := range users {
		values := []any{
			u.ID, u.Name, u.Email, string(u.Role),
			u.FarmName, u.Location,
			u.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=farmmate-users-%s.xlsx", time.Now().Format("2006-01-02")))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		httperr.Internal(c, "failed_to_export_users", "Failed to export users")
		return
	}
}
