package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/models"
)

type RecordGormRepository struct {
	db *gorm.DB
}

func NewRecordGormRepository(db *gorm.DB) *RecordGormRepository {
	return &RecordGormRepository{db: db}
}

// --------------------------------------------------
// Scan
// --------------------------------------------------

func (r *RecordGormRepository) CreateScan(
	ctx context.Context,
	scan *models.Scan,
) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *RecordGormRepository) ListScansByOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.Scan, error) {

	var scans []models.Scan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

// --------------------------------------------------
// FertilizerPlan
// --------------------------------------------------

func (r *RecordGormRepository) CreatePlan(
	ctx context.Context,
	plan *models.FertilizerPlan,
) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *RecordGormRepository) ListPlansByOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.FertilizerPlan, error) {

	var plans []models.FertilizerPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// --------------------------------------------------
// Farm
// --------------------------------------------------

func (r *RecordGormRepository) CreateFarm(
	ctx context.Context,
	farm *models.Farm,
) error {
	return r.db.WithContext(ctx).Create(farm).Error
}

func (r *RecordGormRepository) ListFarmsByOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.Farm, error) {

	var farms []models.Farm
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&farms).Error; err != nil {
		return nil, err
	}
	return farms, nil
}

// GetOwnedFarm hides ownership mismatches behind the same not-found
// error as a missing row.
func (r *RecordGormRepository) GetOwnedFarm(
	ctx context.Context,
	ownerID uint,
	farmID uint,
) (*models.Farm, error) {

	var farm models.Farm
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", farmID, ownerID).
		First(&farm).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("farm_not_found")
		}
		return nil, err
	}
	return &farm, nil
}

func (r *RecordGormRepository) UpdateFarm(
	ctx context.Context,
	farm *models.Farm,
) error {
	return r.db.WithContext(ctx).Save(farm).Error
}

// DeleteOwnedFarm does not cascade to scans or plans; their farm
// reference is advisory.
func (r *RecordGormRepository) DeleteOwnedFarm(
	ctx context.Context,
	ownerID uint,
	farmID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", farmID, ownerID).
		Delete(&models.Farm{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("farm_not_found")
	}
	return nil
}

// --------------------------------------------------
// Admin aggregation
// --------------------------------------------------

func (r *RecordGormRepository) Counts(ctx context.Context) (domain.Counts, error) {
	var counts domain.Counts

	if err := r.db.WithContext(ctx).
		Model(&models.User{}).Count(&counts.UserCount).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Scan{}).Count(&counts.ScanCount).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.FertilizerPlan{}).Count(&counts.PlanCount).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

func (r *RecordGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *RecordGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *RecordGormRepository) RecentScans(ctx context.Context, limit int) ([]models.Scan, error) {
	var scans []models.Scan
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

func (r *RecordGormRepository) RecentPlans(ctx context.Context, limit int) ([]models.FertilizerPlan, error) {
	var plans []models.FertilizerPlan
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Compile-time check
var _ domain.Repository = (*RecordGormRepository)(nil)
