package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Server exposes a Gateway over HTTP for the standalone payment-gateway binary.
type Server struct {
	gateway Gateway
	log     *slog.Logger
}

func NewServer(gateway Gateway, log *slog.Logger) *Server {
	return &Server{gateway: gateway, log: log}
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/charge", s.charge)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) charge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.gateway.Charge(r.Context(), req.Amount, req.Method)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.ErrorContext(r.Context(), "charge failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "charge failed"})
		return
	}

	if result.Success {
		s.log.InfoContext(r.Context(), "charge approved",
			"transaction_id", result.TransactionID, "amount", req.Amount.StringFixed(2), "method", req.Method)
	} else {
		s.log.InfoContext(r.Context(), "charge declined", "reason", result.Reason, "method", req.Method)
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
