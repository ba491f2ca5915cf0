package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"
)

const currentWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var ErrUpstream = errors.New("weather upstream failed")

// Report is the shaped response served to the frontend.
type Report struct {
	TempC      float64 `json:"tempC"`
	RainfallMm float64 `json:"rainfallMm"`
	Condition  string  `json:"condition"`
	Humidity   float64 `json:"humidity"`
	WindKph    float64 `json:"windKph"`
	City       string  `json:"city"`
	Icon       string  `json:"icon,omitempty"`
}

// Placeholder is served when no API key is configured, preserving the
// fixed response the frontend already understands.
func Placeholder() Report {
	return Report{TempC: 28, RainfallMm: 2, Condition: "Partly Cloudy"}
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: currentWeatherURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Configured reports whether a real upstream call can be made.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Name string `json:"name"`
}

// Current fetches metric current weather by city name or coordinates.
func (c *Client) Current(ctx context.Context, city, lat, lon string) (*Report, error) {
	params := url.Values{}
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	if city != "" {
		params.Set("q", city)
	} else {
		params.Set("lat", lat)
		params.Set("lon", lon)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, ErrUpstream
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("weather: upstream call failed: %v", err)
		return nil, ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("weather: upstream returned status %d", resp.StatusCode)
		return nil, ErrUpstream
	}

	var out openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("weather: malformed upstream body: %v", err)
		return nil, ErrUpstream
	}

	report := Report{
		TempC:      out.Main.Temp,
		RainfallMm: out.Rain.OneHour,
		Humidity:   out.Main.Humidity,
		WindKph:    out.Wind.Speed * 3.6,
		City:       out.Name,
		Condition:  "Unknown",
	}
	if len(out.Weather) > 0 {
		report.Condition = out.Weather[0].Description
		report.Icon = out.Weather[0].Icon
	}
	return &report, nil
}
