package ollama

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
	DefaultURL   = "http://localhost:11434/api/generate"
	DefaultModel = "llama3.2"

	defaultTimeout = 60 * time.Second
	temperature    = 0.8
	numPredict     = 500
	maxBodyBytes   = 1 << 20

	hint = "Make sure Ollama is running (ollama serve) and the model is installed."
)

// Config carries the local backend settings.
type Config struct {
	URL     string
	Model   string
	Timeout time.Duration
}

// Client implements llm.Generator against a local Ollama server.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a local client.
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

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response *string `json:"response"`
	Error    string  `json:"error,omitempty"`
}

// Backend reports llm.BackendLocal.
func (c *Client) Backend() llm.Backend {
	return llm.BackendLocal
}

// Generate sends one non-streaming generate request and returns the trimmed response text.
func (c *Client) Generate(ctx context.Context, resumeText string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.cfg.Model,
		Prompt: llm.RoastPrompt(resumeText),
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			NumPredict:  numPredict,
		},
	})
	if err != nil {
		return "", err
	}

	// An issued call runs to completion or to the client timeout, even if the caller goes away.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", unavailable(fmt.Errorf("ollama request timeout: %w", err))
		}
		return "", unavailable(fmt.Errorf("ollama request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", unavailable(fmt.Errorf("ollama read body: %w", err))
	}

	var parsed generateResponse
	decodeErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && parsed.Error != "" {
			return "", unavailable(fmt.Errorf("ollama http status %d: %s", resp.StatusCode, parsed.Error))
		}
		return "", unavailable(fmt.Errorf("ollama http status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: ollama response parse: %v", llm.ErrMalformedResponse, decodeErr)
	}
	if parsed.Response == nil {
		return "", fmt.Errorf("%w: ollama response missing response field", llm.ErrMalformedResponse)
	}

	text := strings.TrimSpace(*parsed.Response)
	if text == "" {
		return "", fmt.Errorf("%w: empty response from local AI", llm.ErrEmptyResponse)
	}
	return text, nil
}

func unavailable(err error) error {
	return &llm.UpstreamError{
		Backend: llm.BackendLocal,
		Hint:    hint,
		Err:     err,
	}
}

var _ llm.Generator = (*Client)(nil)
