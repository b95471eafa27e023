// Package ai generates text for the store front, either through the Anthropic
// Messages API or, with no API key configured, a local mock.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/go_pos/internal/domain"
)

const (
	DefaultMaxTokens = 512
	MockModel        = "mock"
)

// ErrUpstream marks a failed or rejected call to the model provider.
var ErrUpstream = errors.New("ai provider error")

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type Result struct {
	Model string
	ID    string
	Text  string
	Usage *Usage
}

type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (Result, error)
}

type Config struct {
	APIKey string
	APIURL string
	Model  string
}

// New returns the Anthropic client when an API key is set and the mock otherwise.
func New(cfg Config, client HTTPDoer) Generator {
	if cfg.APIKey == "" {
		return MockGenerator{}
	}
	return NewAnthropicClient(cfg, client)
}

// MockGenerator echoes the prompt length so the UI works without credentials.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, prompt string, maxTokens int) (Result, error) {
	if _, err := checkInput(prompt, maxTokens); err != nil {
		return Result{}, err
	}
	return Result{
		Model: MockModel,
		Text:  fmt.Sprintf("MOCK: Received prompt length %d", len(prompt)),
	}, nil
}

func checkInput(prompt string, maxTokens int) (int, error) {
	if strings.TrimSpace(prompt) == "" {
		return 0, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if maxTokens < 0 {
		return 0, fmt.Errorf("%w: max_tokens must not be negative", domain.ErrValidation)
	}
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	return maxTokens, nil
}
