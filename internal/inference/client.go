package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ErrUnavailable is the single failure class of the gateway: network
// errors, non-2xx responses and malformed bodies all collapse into it.
// The gateway never fabricates a partial result.
var ErrUnavailable = errors.New("inference service unavailable")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// --------- Disease detection ---------

type DiseaseResult struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"`
}

type detectRequest struct {
	Image string `json:"image"`
	Crop  string `json:"crop,omitempty"`
}

// DetectDisease forwards the submitted image reference (typically an
// inline base64 data URI) to the prediction service.
func (c *Client) DetectDisease(ctx context.Context, image, crop string) (*DiseaseResult, error) {
	var out DiseaseResult
	if err := c.post(ctx, "/api/detect-disease", detectRequest{Image: image, Crop: crop}, &out); err != nil {
		return nil, err
	}
	if out.Disease == "" {
		log.Printf("inference: detect-disease returned empty label")
		return nil, ErrUnavailable
	}
	return &out, nil
}

// --------- Fertilizer recommendation ---------

type FertilizerRequest struct {
	Crop string   `json:"crop"`
	Soil string   `json:"soil,omitempty"`
	PH   *float64 `json:"ph,omitempty"`
	N    *float64 `json:"N,omitempty"`
	P    *float64 `json:"P,omitempty"`
	K    *float64 `json:"K,omitempty"`
	Size *float64 `json:"size,omitempty"`
}

type Nutrients struct {
	N float64 `json:"N"`
	P float64 `json:"P"`
	K float64 `json:"K"`
}

type FertilizerResult struct {
	Crop        string    `json:"crop"`
	Soil        string    `json:"soil"`
	Nutrients   Nutrients `json:"nutrients"`
	Fertilizer  string    `json:"fertilizer"`
	Why         string    `json:"why"`
	Application []string  `json:"application"`
	Precautions []string  `json:"precautions"`
}

func (c *Client) RecommendFertilizer(ctx context.Context, req FertilizerRequest) (*FertilizerResult, error) {
	var out FertilizerResult
	if err := c.post(ctx, "/api/recommend-fertilizer", req, &out); err != nil {
		return nil, err
	}
	if out.Fertilizer == "" {
		log.Printf("inference: recommend-fertilizer returned empty recommendation")
		return nil, ErrUnavailable
	}
	return &out, nil
}

// --------- Transport ---------

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("inference: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("inference: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("inference: %s failed: %v", path, err)
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("inference: %s returned status %d", path, resp.StatusCode)
		return ErrUnavailable
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("inference: %s returned malformed body: %v", path, err)
		return ErrUnavailable
	}
	return nil
}
