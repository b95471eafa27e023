package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPGateway calls a remote gateway exposing POST /charge.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

func (g *HTTPGateway) Charge(ctx context.Context, amount decimal.Decimal, method domain.PaymentMethod) (ChargeResult, error) {
	body, err := json.Marshal(chargeRequest{Amount: amount, Method: method})
	if err != nil {
		return ChargeResult{}, fmt.Errorf("marshal charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charge", bytes.NewReader(body))
	if err != nil {
		return ChargeResult{}, fmt.Errorf("build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return ChargeResult{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return ChargeResult{}, fmt.Errorf("%w: gateway rejected the request", domain.ErrValidation)
	}
	if resp.StatusCode != http.StatusOK {
		return ChargeResult{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ChargeResult{}, fmt.Errorf("%w: decode charge response: %w", ErrUnavailable, err)
	}
	if result.Success && result.TransactionID == "" {
		return ChargeResult{}, fmt.Errorf("%w: approved charge without transaction id", ErrUnavailable)
	}
	return result, nil
}
