package http

import (
	"encoding/json"
	"net/http"
)

type paymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type paymentSessionRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
}

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	secret, err := s.payments.CreatePaymentIntent(r.Context(), req.Amount)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"clientSecret": secret}, s.log)
}

func (s *Server) handleCreatePaymentSession(w http.ResponseWriter, r *http.Request) {
	var req paymentSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	url, err := s.payments.CreatePaymentSession(r.Context(), req.Amount, req.Currency)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"paymentUrl": url}, s.log)
}
