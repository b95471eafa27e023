package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayServer(t *testing.T, strategy OutcomeStrategy) *httptest.Server {
	r := chi.NewRouter()
	NewServer(NewSimulatedGateway(strategy, 0), discardLogger()).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPGateway_Approved(t *testing.T) {
	srv := newGatewayServer(t, FixedOutcome{Approved: true})
	g := NewHTTPGateway(srv.URL, time.Second)

	result, err := g.Charge(context.Background(), decimal.RequireFromString("224.00"), domain.PaymentMethodCard)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Regexp(t, txnPattern, result.TransactionID)
}

func TestHTTPGateway_Declined(t *testing.T) {
	srv := newGatewayServer(t, FixedOutcome{Approved: false, Reason: "limit exceeded"})
	g := NewHTTPGateway(srv.URL+"/", time.Second)

	result, err := g.Charge(context.Background(), decimal.NewFromInt(10), domain.PaymentMethodUPI)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "limit exceeded", result.Reason)
}

func TestHTTPGateway_BadRequest(t *testing.T) {
	srv := newGatewayServer(t, FixedOutcome{Approved: true})
	g := NewHTTPGateway(srv.URL, time.Second)

	_, err := g.Charge(context.Background(), decimal.NewFromInt(10), domain.PaymentMethod("cheque"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHTTPGateway_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(srv.URL, time.Second).Charge(context.Background(), decimal.NewFromInt(10), domain.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPGateway_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(srv.URL, time.Second).Charge(context.Background(), decimal.NewFromInt(10), domain.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPGateway_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := NewHTTPGateway(srv.URL, 5*time.Second).Charge(ctx, decimal.NewFromInt(10), domain.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestServer_InvalidBody(t *testing.T) {
	srv := newGatewayServer(t, FixedOutcome{Approved: true})

	resp, err := http.Post(srv.URL+"/charge", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
