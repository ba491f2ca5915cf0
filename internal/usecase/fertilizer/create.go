package fertilizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/souviksingh11/farmmate/internal/audit"
	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/inference"
	"github.com/souviksingh11/farmmate/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreatePlanInput struct {
	UserID uint

	Crop string
	Soil string
	PH   *float64
	N    *float64
	P    *float64
	K    *float64
	Size *float64
}

// ======================================================
// USE CASE
// ======================================================

type CreatePlan struct {
	repo      domain.Repository
	inference *inference.Client
	audit     *audit.Dispatcher
}

func NewCreatePlan(
	repo domain.Repository,
	inferenceClient *inference.Client,
	auditDispatcher *audit.Dispatcher,
) *CreatePlan {
	return &CreatePlan{
		repo:      repo,
		inference: inferenceClient,
		audit:     auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePlan) Execute(
	ctx context.Context,
	in CreatePlanInput,
) (*models.FertilizerPlan, error) {

	if strings.TrimSpace(in.Crop) == "" {
		return nil, httperr.ErrBusiness("crop_required")
	}

	ai, err := uc.inference.RecommendFertilizer(ctx, inference.FertilizerRequest{
		Crop: in.Crop,
		Soil: in.Soil,
		PH:   in.PH,
		N:    in.N,
		P:    in.P,
		K:    in.K,
		Size: in.Size,
	})
	if err != nil {
		return nil, err
	}

	plan := &models.FertilizerPlan{
		UserID:         in.UserID,
		Crop:           in.Crop,
		SoilN:          ai.Nutrients.N,
		SoilP:          ai.Nutrients.P,
		SoilK:          ai.Nutrients.K,
		Recommendation: buildRecommendation(ai),
	}

	if err := uc.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "plan_created",
		Entity:   "fertilizer_plan",
		EntityID: &plan.ID,
	})

	return plan, nil
}

// buildRecommendation assembles the part-wise display text stored (and
// later returned) verbatim.
func buildRecommendation(ai *inference.FertilizerResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Crop: %s\n", ai.Crop)
	fmt.Fprintf(&b, "Soil Type: %s\n\n", ai.Soil)

	b.WriteString("Estimated Soil Nutrients:\n")
	fmt.Fprintf(&b, "• Nitrogen (N): %g\n", ai.Nutrients.N)
	fmt.Fprintf(&b, "• Phosphorus (P): %g\n", ai.Nutrients.P)
	fmt.Fprintf(&b, "• Potassium (K): %g\n\n", ai.Nutrients.K)

	b.WriteString("Recommended Fertilizer:\n")
	b.WriteString(ai.Fertilizer)
	b.WriteString("\n\n")

	b.WriteString("Why this fertilizer?\n")
	b.WriteString(ai.Why)
	b.WriteString("\n\n")

	b.WriteString("Application Guidelines:\n")
	for _, a := range ai.Application {
		fmt.Fprintf(&b, "• %s\n", a)
	}

	b.WriteString("\nPrecautions:\n")
	for _, p := range ai.Precautions {
		fmt.Fprintf(&b, "• %s\n", p)
	}

	return strings.TrimSpace(b.String())
}
