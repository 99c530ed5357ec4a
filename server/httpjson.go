package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-boardgame-service/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the service-layer error taxonomy onto HTTP statuses.
// This is the only place in the repo that knows about status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials),
		apperrors.Is(err, apperrors.ErrInvalidToken),
		apperrors.Is(err, apperrors.ErrWrongTokenKind),
		apperrors.Is(err, apperrors.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: reason(err)})
	case apperrors.Is(err, apperrors.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case apperrors.Is(err, apperrors.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case apperrors.Is(err, apperrors.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func reason(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrWrongTokenKind):
		return apperrors.ErrWrongTokenKind.Error()
	case apperrors.Is(err, apperrors.ErrInvalidToken):
		return apperrors.ErrInvalidToken.Error()
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return apperrors.ErrUnauthorized.Error()
	default:
		return apperrors.ErrInvalidCredentials.Error()
	}
}
