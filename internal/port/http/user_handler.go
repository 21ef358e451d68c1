package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
)

type upsertUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"img"`
}

type upsertUserResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type setIdentityImageRequest struct {
	Kind string `json:"kind" validate:"required,oneof=nid passport"`
	URL  string `json:"url" validate:"required,url"`
}

func (s *Server) handleUpsertUser(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	user, token, err := s.users.UpsertUser(r.Context(), req.Email, req.Name, req.Image)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, upsertUserResponse{User: user, Token: token}, s.log)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), chi.URLParam(r, "email"), userEmail(r.Context()))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, user, s.log)
}

func (s *Server) handleConfirmUser(w http.ResponseWriter, r *http.Request) {
	exists, err := s.users.ConfirmUser(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"exists": exists}, s.log)
}

func (s *Server) handleSetIdentityImage(w http.ResponseWriter, r *http.Request) {
	var req setIdentityImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"}, s.log)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err, s.log)
		return
	}

	err := s.users.SetIdentityImage(
		r.Context(),
		chi.URLParam(r, "email"),
		repository.IdentityImageKind(req.Kind),
		req.URL,
		userEmail(r.Context()),
	)
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"}, s.log)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context(), userEmail(r.Context()))
	if err != nil {
		respondServiceError(w, err, s.log)
		return
	}
	respondJSON(w, http.StatusOK, users, s.log)
}
