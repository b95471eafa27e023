package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutKeyUsesMock(t *testing.T) {
	g := New(Config{}, nil)

	result, err := g.Generate(context.Background(), "describe a silk scarf", 0)
	require.NoError(t, err)
	assert.Equal(t, MockModel, result.Model)
	assert.Equal(t, "MOCK: Received prompt length 21", result.Text)
}

func TestMockGenerator_RejectsEmptyPrompt(t *testing.T) {
	_, err := MockGenerator{}.Generate(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = MockGenerator{}.Generate(context.Background(), "hi", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAnthropicClient_Generate(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"A soft silk scarf."}],"usage":{"input_tokens":5,"output_tokens":6}}`))
	}))
	defer srv.Close()

	g := New(Config{APIKey: "test-key", APIURL: srv.URL, Model: "test-model"}, NewHTTPClient(time.Second))

	result, err := g.Generate(context.Background(), "describe a silk scarf", 0)
	require.NoError(t, err)
	assert.Equal(t, "test-model", result.Model)
	assert.Equal(t, "msg_1", result.ID)
	assert.Equal(t, "A soft silk scarf.", result.Text)
	require.NotNil(t, result.Usage)
	assert.Equal(t, 6, result.Usage.OutputTokens)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, message{Role: "user", Content: "describe a silk scarf"}, got.Messages[0])
}

func TestAnthropicClient_PassesThroughReplyWithoutText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"msg_2","content":[]}`))
	}))
	defer srv.Close()

	g := NewAnthropicClient(Config{APIKey: "k", APIURL: srv.URL, Model: "m"}, NewHTTPClient(time.Second))

	result, err := g.Generate(context.Background(), "hi", 16)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"msg_2","content":[]}`, result.Text)
}

func TestAnthropicClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
	}))
	defer srv.Close()

	g := NewAnthropicClient(Config{APIKey: "k", APIURL: srv.URL, Model: "m"}, NewHTTPClient(time.Second))

	_, err := g.Generate(context.Background(), "hi", 0)
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate_limited")
}

func TestAnthropicClient_ValidatesBeforeCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := NewAnthropicClient(Config{APIKey: "k", APIURL: srv.URL}, NewHTTPClient(time.Second))

	_, err := g.Generate(context.Background(), "", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)
}
