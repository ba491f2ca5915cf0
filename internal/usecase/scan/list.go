package scan

import (
	"context"

	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/models"
)

type ListScans struct {
	repo domain.Repository
}

func NewListScans(repo domain.Repository) *ListScans {
	return &ListScans{repo: repo}
}

// Execute returns the caller's scans, newest first.
func (uc *ListScans) Execute(
	ctx context.Context,
	ownerID uint,
) ([]models.Scan, error) {
	return uc.repo.ListScansByOwner(ctx, ownerID)
}
