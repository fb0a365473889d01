package meme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hiremenot/internal/shared/metrics"
	"hiremenot/internal/shared/telemetry"
)

const (
	DefaultURL = "https://api.giphy.com/v1/gifs/random"

	defaultTimeout = 10 * time.Second
	rating         = "pg-13"
	maxBodyBytes   = 1 << 20
)

var errNoKey = errors.New("giphy api key not configured")

// Config carries Giphy settings. An empty APIKey disables lookups.
type Config struct {
	APIKey  string
	URL     string
	Timeout time.Duration
}

// Client looks up decorative GIFs. Every failure degrades to "no URL".
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a Giphy client.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type randomResponse struct {
	Data struct {
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// Random returns a random GIF URL for tag. ok is false when no URL is available for any reason.
func (c *Client) Random(ctx context.Context, tag string) (string, bool) {
	gif, err := c.lookup(ctx, tag)
	if err != nil {
		metrics.IncMemeMiss()
		telemetry.Debug("meme.miss", map[string]any{"tag": tag, "error": err})
		return "", false
	}
	return gif, true
}

func (c *Client) lookup(ctx context.Context, tag string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errNoKey
	}

	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("giphy url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.cfg.APIKey)
	q.Set("tag", tag)
	q.Set("rating", rating)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("giphy request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("giphy http status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("giphy read body: %w", err)
	}
	var parsed randomResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("giphy response parse: %w", err)
	}
	gif := strings.TrimSpace(parsed.Data.Images.Original.URL)
	if gif == "" {
		return "", errors.New("giphy response missing image url")
	}
	return gif, nil
}
