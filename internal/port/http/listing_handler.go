package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/service"
)

type createListingRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	FromDate    string  `json:"fromDate" validate:"required"`
	ToDate      string  `json:"toDate" validate:"required"`
	Image       string  `json:"img"`
	Bedrooms    int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int     `json:"bathrooms" validate:"gte=0"`
	Guests      int     `json:"guests" validate:"gte=0"`
	HostName    string  `json:"hostName"`
	HostImage   string  `json:"hostImg"`
}

type updateListingRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	FromDate    string  `json:"fromDate" validate:"required"`
	ToDate      string  `json:"toDate" validate:"required"`
	Image       string  `json:"img"`
	Bedrooms    int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int     `json:"bathrooms" validate:"gte=0"`
	Guests      int     `json:"guests" validate:"gte=0"`
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	listing, err := s.listings.Create(r.Context(), service.CreateListingParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		Image:       req.Image,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Guests:      req.Guests,
		Host: entity.Host{
			Name:  req.HostName,
			Email: userEmail(r.Context()),
			Image: req.HostImage,
		},
	})
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusCreated, listing, s.log)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.listings.GetOpenByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, listing, s.log)
}

func (s *Server) handleListOpenListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.listings.ListOpen(r.Context())
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, listings, s.log)
}

func (s *Server) handleListHostListings(w http.ResponseWriter, r *http.Request) {
	email := userEmail(r.Context())
	listings, err := s.listings.ListByHost(r.Context(), email, email)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, listings, s.log)
}

func (s *Server) handleSearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var maxPrice float64
	if raw := q.Get("maxPrice"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "maxPrice must be a number"}, s.log)
			return
		}
		maxPrice = parsed
	}

	listings, err := s.listings.Search(r.Context(), service.SearchParams{
		Location: q.Get("location"),
		Category: q.Get("category"),
		MaxPrice: maxPrice,
		FromDate: q.Get("fromDate"),
		ToDate:   q.Get("toDate"),
	})
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, listings, s.log)
}

func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	listing, err := s.listings.Update(r.Context(), service.UpdateListingParams{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		Image:       req.Image,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Guests:      req.Guests,
	}, userEmail(r.Context()))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, listing, s.log)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.listings.Delete(r.Context(), chi.URLParam(r, "id"), userEmail(r.Context())); err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"}, s.log)
}
