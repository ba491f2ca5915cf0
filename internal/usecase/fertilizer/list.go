package fertilizer

import (
	"context"

	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/models"
)

type ListPlans struct {
	repo domain.Repository
}

func NewListPlans(repo domain.Repository) *ListPlans {
	return &ListPlans{repo: repo}
}

func (uc *ListPlans) Execute(
	ctx context.Context,
	ownerID uint,
) ([]models.FertilizerPlan, error) {
	return uc.repo.ListPlansByOwner(ctx, ownerID)
}
