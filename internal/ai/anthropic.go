package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultAPIURL    = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	maxErrorBody     = 4 << 10
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a traced client for model calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

type AnthropicClient struct {
	apiKey string
	apiURL string
	model  string
	client HTTPDoer
}

func NewAnthropicClient(cfg Config, client HTTPDoer) *AnthropicClient {
	url := cfg.APIURL
	if url == "" {
		url = DefaultAPIURL
	}
	return &AnthropicClient{
		apiKey: cfg.APIKey,
		apiURL: url,
		model:  cfg.Model,
		client: client,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *Usage `json:"usage"`
}

func (c *AnthropicClient) Generate(ctx context.Context, prompt string, maxTokens int) (Result, error) {
	maxTokens, err := checkInput(prompt, maxTokens)
	if err != nil {
		return Result{}, err
	}

	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal messages request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build messages request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call messages api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read messages response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return Result{}, fmt.Errorf("%w: %d %s", ErrUpstream, resp.StatusCode, bytes.TrimSpace(raw))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: decode messages response: %w", ErrUpstream, err)
	}

	// a reply without a text block is passed through verbatim
	text := string(raw)
	if len(parsed.Content) > 0 && parsed.Content[0].Text != "" {
		text = parsed.Content[0].Text
	}

	return Result{
		Model: c.model,
		ID:    parsed.ID,
		Text:  text,
		Usage: parsed.Usage,
	}, nil
}
