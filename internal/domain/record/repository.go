package record

import (
	"context"

	"github.com/souviksingh11/farmmate/internal/models"
)

// Counts is the admin overview aggregate.
type Counts struct {
	UserCount int64 `json:"userCount"`
	ScanCount int64 `json:"scanCount"`
	PlanCount int64 `json:"planCount"`
}

// Repository is the Record Store contract. Scans and fertilizer plans
// are append-only; only farms expose owner-scoped mutation. Every
// non-admin read is scoped to the calling owner.
type Repository interface {
	// -------- Scan (append-only) --------
	CreateScan(
		ctx context.Context,
		scan *models.Scan,
	) error

	ListScansByOwner(
		ctx context.Context,
		ownerID uint,
	) ([]models.Scan, error)

	// -------- FertilizerPlan (append-only) --------
	CreatePlan(
		ctx context.Context,
		plan *models.FertilizerPlan,
	) error

	ListPlansByOwner(
		ctx context.Context,
		ownerID uint,
	) ([]models.FertilizerPlan, error)

	// -------- Farm (owner-scoped CRUD) --------
	CreateFarm(
		ctx context.Context,
		farm *models.Farm,
	) error

	ListFarmsByOwner(
		ctx context.Context,
		ownerID uint,
	) ([]models.Farm, error)

	GetOwnedFarm(
		ctx context.Context,
		ownerID uint,
		farmID uint,
	) (*models.Farm, error)

	UpdateFarm(
		ctx context.Context,
		farm *models.Farm,
	) error

	DeleteOwnedFarm(
		ctx context.Context,
		ownerID uint,
		farmID uint,
	) error

	// -------- Admin aggregation (crosses owners) --------
	Counts(ctx context.Context) (Counts, error)

	ListUsers(ctx context.Context) ([]models.User, error)

	GetUser(ctx context.Context, id uint) (*models.User, error)

	RecentScans(ctx context.Context, limit int) ([]models.Scan, error)

	RecentPlans(ctx context.Context, limit int) ([]models.FertilizerPlan, error)
}
