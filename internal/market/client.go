package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
)

// data.gov.in daily mandi price resource.
const resourceURL = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"

const cacheTTL = 15 * time.Minute

var (
	// ErrUnconfigured means the upstream API key is absent.
	ErrUnconfigured = errors.New("market api key not configured")
	// ErrUpstream covers network failures, non-2xx and malformed
	// bodies; the upstream response is never forwarded to clients.
	ErrUpstream = errors.New("market upstream failed")
)

// Record is one mandi price row, passed through as upstream shapes it.
type Record map[string]any

type upstreamResponse struct {
	Records []Record `json:"records"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *redis.Client
}

// NewClient builds the price client. cache may be nil; caching is then
// skipped entirely.
func NewClient(apiKey string, cache *redis.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: resourceURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// WithBaseURL points the client at a different upstream (tests).
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Prices fetches up to 50 price records for a commodity and state,
// optionally narrowed by district. Responses are cached for 15 minutes;
// cache failures are logged and bypassed, never surfaced.
func (c *Client) Prices(ctx context.Context, commodity, state, district string) ([]Record, error) {
	if c.apiKey == "" {
		return nil, ErrUnconfigured
	}

	cacheKey := fmt.Sprintf("market:%s:%s:%s", commodity, state, district)

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			var records []Record
			if json.Unmarshal([]byte(cached), &records) == nil {
				return records, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("market: cache read failed: %v", err)
		}
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", "50")
	params.Set("filters[commodity]", commodity)
	params.Set("filters[state]", state)
	if district != "" {
		params.Set("filters[district]", district)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, ErrUpstream
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("market: upstream call failed: %v", err)
		return nil, ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("market: upstream returned status %d", resp.StatusCode)
		return nil, ErrUpstream
	}

	var out upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("market: malformed upstream body: %v", err)
		return nil, ErrUpstream
	}

	records := out.Records
	if records == nil {
		records = []Record{}
	}

	if c.cache != nil {
		if encoded, err := json.Marshal(records); err == nil {
			if err := c.cache.Set(ctx, cacheKey, encoded, cacheTTL).Err(); err != nil {
				log.Printf("market: cache write failed: %v", err)
			}
		}
	}

	return records, nil
}
