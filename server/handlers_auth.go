package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-boardgame-service/auth"
	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	Token            string    `json:"token"`
	RefreshToken     string    `json:"refreshToken"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
	User             authUser  `json:"user"`
}

type authUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "a valid email is required"})
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	session, err := s.services.Auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidRequest) {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "password does not meet requirements"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse(session))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := s.services.Auth.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(session))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "refreshToken is required"})
		return
	}

	session, err := s.services.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(session))
}

func sessionResponse(session *auth.Session) authResponse {
	return authResponse{
		Token:            session.Access.Token,
		RefreshToken:     session.Refresh.Token,
		ExpiresAt:        session.Access.ExpiresAt,
		RefreshExpiresAt: session.Refresh.ExpiresAt,
		User:             authUser{ID: session.User.ID, Name: session.User.Name},
	}
}
