package grounding

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/uiact/actiongraph/pkg/schema"
)

// Config holds the HTTP locator configuration.
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	Debug      bool          `yaml:"debug"`
}

// locateRequest is the wire format sent to the grounding endpoint.
type locateRequest struct {
	Description string         `json:"description"`
	Screenshot  string         `json:"screenshot,omitempty"` // base64 PNG
	Width       int            `json:"width,omitempty"`
	Height      int            `json:"height,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// locateResponse is the wire format returned by the grounding endpoint.
type locateResponse struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Error string  `json:"error,omitempty"`
}

// Client is an HTTP Locator backed by a grounding service.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client from config, applying defaults for timeout
// and retries.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(timeout).
			SetRetryCount(cfg.MaxRetries).
			SetDebug(cfg.Debug),
	}
}

// Locate posts the description and observation to the service's /locate
// endpoint and returns the resolved position.
func (c *Client) Locate(ctx context.Context, description string, obs *schema.Observation) (schema.Point, error) {
	if description == "" {
		return schema.Point{}, schema.NewError(schema.ErrCodeGrounding, "empty target description")
	}

	req := locateRequest{Description: description}
	if obs != nil {
		if len(obs.Screenshot) > 0 {
			req.Screenshot = base64.StdEncoding.EncodeToString(obs.Screenshot)
		}
		req.Width = obs.Width
		req.Height = obs.Height
		req.Metadata = obs.Metadata
	}

	var out locateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/locate")
	if err != nil {
		return schema.Point{}, schema.NewErrorf(schema.ErrCodeGrounding,
			"locator request failed: %s", err.Error()).WithCause(err)
	}
	if resp.IsError() {
		return schema.Point{}, schema.NewErrorf(schema.ErrCodeGrounding,
			"locator returned %s", resp.Status()).
			WithDetails(map[string]any{"status_code": resp.StatusCode(), "body": string(resp.Body())})
	}
	if out.Error != "" {
		return schema.Point{}, schema.NewErrorf(schema.ErrCodeGrounding,
			"locator could not resolve %q: %s", description, out.Error)
	}

	return schema.Point{X: out.X, Y: out.Y}, nil
}

var _ Locator = (*Client)(nil)
