package scan

import (
	"context"
	"log"

	"github.com/souviksingh11/farmmate/internal/audit"
	"github.com/souviksingh11/farmmate/internal/domain/diagnosis"
	domain "github.com/souviksingh11/farmmate/internal/domain/record"
	"github.com/souviksingh11/farmmate/internal/images"
	"github.com/souviksingh11/farmmate/internal/inference"
	"github.com/souviksingh11/farmmate/internal/models"
)

// ImageStore is the optional object-storage hook for submitted images.
type ImageStore interface {
	PutScanImage(ctx context.Context, data []byte, mime string) (string, error)
}

// ======================================================
// INPUT
// ======================================================

type CreateScanInput struct {
	UserID uint
	FarmID *uint

	// ImageURL is the submitted image reference, usually an inline
	// base64 data URI from the frontend uploader.
	ImageURL string

	// Crop is a hint forwarded to the prediction service.
	Crop string
}

// ======================================================
// USE CASE
// ======================================================

// CreateScan runs the full scan pipeline: inference, classification,
// optional object-store upload, persistence, audit.
type CreateScan struct {
	repo      domain.Repository
	inference *inference.Client
	store     ImageStore
	audit     *audit.Dispatcher
}

func NewCreateScan(
	repo domain.Repository,
	inferenceClient *inference.Client,
	store ImageStore,
	auditDispatcher *audit.Dispatcher,
) *CreateScan {
	return &CreateScan{
		repo:      repo,
		inference: inferenceClient,
		store:     store,
		audit:     auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateScan) Execute(
	ctx context.Context,
	in CreateScanInput,
) (*models.Scan, error) {

	// 1. External inference. Failure aborts the pipeline; nothing
	// is persisted and no result is fabricated here.
	result, err := uc.inference.DetectDisease(ctx, in.ImageURL, in.Crop)
	if err != nil {
		return nil, err
	}

	// 2. Canonical 0–1 confidence, then classification: exact table
	// first, substring fallback otherwise.
	confidence := diagnosis.NormalizeConfidence(result.Confidence)
	info := diagnosis.Classify(result.Disease, confidence)

	// 3. Optional object storage. Upload failure keeps the inline
	// data URI; the record must stay resolvable either way.
	imageURL := in.ImageURL
	if uc.store != nil {
		if mime, data, err := images.ParseDataURI(in.ImageURL); err == nil {
			if url, err := uc.store.PutScanImage(ctx, data, mime); err == nil {
				imageURL = url
			} else {
				log.Printf("scan: image upload failed, keeping inline: %v", err)
			}
		}
	}

	// 4. Persist the composed document.
	sc := &models.Scan{
		UserID:   in.UserID,
		FarmID:   in.FarmID,
		ImageURL: imageURL,
		Result: models.ScanResult{
			Disease:         result.Disease,
			Confidence:      confidence,
			Type:            info.Type,
			Severity:        info.Severity,
			Fertilizer:      info.Fertilizer,
			Recommendations: info.Treatment,
		},
	}

	if err := uc.repo.CreateScan(ctx, sc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "scan_created",
		Entity:   "scan",
		EntityID: &sc.ID,
	})

	return sc, nil
}
