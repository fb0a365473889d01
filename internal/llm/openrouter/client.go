package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hiremenot/internal/llm"
)

const (
	DefaultURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel = "meta-llama/llama-3.2-3b-instruct:free"

	defaultTimeout = 30 * time.Second
	temperature    = 0.8
	maxTokens      = 500
	maxBodyBytes   = 1 << 20
)

// Config carries the hosted backend settings.
type Config struct {
	APIKey    string
	URL       string
	Model     string
	SiteURL   string
	SiteTitle string
	Timeout   time.Duration
}

// Client implements llm.Generator against the OpenRouter chat completions API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a hosted client. A missing API key is reported by Generate, not here.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
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

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Backend reports llm.BackendHosted.
func (c *Client) Backend() llm.Backend {
	return llm.BackendHosted
}

// Generate sends one chat completion request and returns the trimmed message content.
func (c *Client) Generate(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY is not set", llm.ErrMissingCredential)
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: llm.RoastPrompt(resumeText)}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	// An issued call runs to completion or to the client timeout, even if the caller goes away.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.SiteURL != "" {
		req.Header.Set("HTTP-Referer", c.cfg.SiteURL)
	}
	if c.cfg.SiteTitle != "" {
		req.Header.Set("X-Title", c.cfg.SiteTitle)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", c.unavailable(fmt.Errorf("openrouter request timeout: %w", err))
		}
		return "", c.unavailable(fmt.Errorf("openrouter request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", c.unavailable(fmt.Errorf("openrouter read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.unavailable(fmt.Errorf("openrouter http status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: openrouter response parse: %v", llm.ErrMalformedResponse, err)
	}
	if parsed.Error != nil {
		return "", c.unavailable(fmt.Errorf("openrouter error: %s", parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: openrouter response missing choices", llm.ErrMalformedResponse)
	}
	msg := parsed.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("%w: openrouter response missing message content", llm.ErrMalformedResponse)
	}

	content := strings.TrimSpace(*msg.Content)
	if content == "" {
		return "", fmt.Errorf("%w: openrouter returned empty content", llm.ErrEmptyResponse)
	}
	return content, nil
}

func (c *Client) unavailable(err error) error {
	return &llm.UpstreamError{
		Backend: llm.BackendHosted,
		Hint:    "The roast service could not be reached. Please try again later.",
		Err:     err,
	}
}

var _ llm.Generator = (*Client)(nil)
