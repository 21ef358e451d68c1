package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mejbahuddintamim/bdrent-server/internal/service"
)

type createBookingRequest struct {
	ListingID     string `json:"listingId" validate:"required"`
	GuestName     string `json:"guestName"`
	TransactionID string `json:"transactionId" validate:"required"`
}

type setBookingStatusRequest struct {
	Booked bool `json:"isBooked"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	booking, err := s.bookings.Reserve(r.Context(), service.ReserveParams{
		ListingID:     req.ListingID,
		GuestName:     req.GuestName,
		GuestEmail:    userEmail(r.Context()),
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusCreated, booking, s.log)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.bookings.GetBooking(r.Context(), chi.URLParam(r, "id"), userEmail(r.Context()))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, booking, s.log)
}

func (s *Server) handleListAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.ListAll(r.Context(), userEmail(r.Context()))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, bookings, s.log)
}

func (s *Server) handleListGuestBookings(w http.ResponseWriter, r *http.Request) {
	email := userEmail(r.Context())
	bookings, err := s.bookings.ListByGuest(r.Context(), email, email)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, bookings, s.log)
}

func (s *Server) handleListHostBookings(w http.ResponseWriter, r *http.Request) {
	email := userEmail(r.Context())
	bookings, err := s.bookings.ListByHost(r.Context(), email, email)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, bookings, s.log)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.bookings.Cancel(r.Context(), chi.URLParam(r, "id"), userEmail(r.Context())); err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"}, s.log)
}

func (s *Server) handleSetBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req setBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}

	err := s.bookings.SetBookingStatus(r.Context(), chi.URLParam(r, "id"), req.Booked, userEmail(r.Context()))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"isBooked": req.Booked}, s.log)
}
