package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/ai"
)

type AIHandler struct {
	generator ai.Generator
	log       *slog.Logger
	timeout   time.Duration
}

func NewAIHandler(generator ai.Generator, log *slog.Logger, timeout time.Duration) *AIHandler {
	return &AIHandler{
		generator: generator,
		log:       log,
		timeout:   timeout,
	}
}

type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type GenerateResponse struct {
	Success bool      `json:"success"`
	Model   string    `json:"model"`
	ID      string    `json:"id,omitempty"`
	Text    string    `json:"text"`
	Usage   *ai.Usage `json:"usage,omitempty"`
}

// Generate handles POST /api/v1/ai/generate
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.generator.Generate(ctx, req.Prompt, req.MaxTokens)
	if err != nil {
		if errors.Is(err, ai.ErrUpstream) {
			h.log.WarnContext(ctx, "ai provider call failed", slog.Any("error", err))
			respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
			return
		}
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Success: true,
		Model:   result.Model,
		ID:      result.ID,
		Text:    result.Text,
		Usage:   result.Usage,
	})
}
