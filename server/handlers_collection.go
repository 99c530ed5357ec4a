package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-boardgame-service/collection"
)

const maxLabelsPerEntry = 10

type addGameRequest struct {
	GameID int      `json:"gameId"`
	Notes  string   `json:"notes"`
	Labels []string `json:"labels"`
}

type updateGameRequest struct {
	Notes  string   `json:"notes"`
	Labels []string `json:"labels"` // nil leaves attachments unchanged, [] clears them
}

type collectionResponse struct {
	Games []collection.Item `json:"games"`
}

// cleanLabels trims each name and rejects empties and oversized sets. A nil
// input stays nil so the service can tell "not supplied" from "clear all".
func cleanLabels(names []string) ([]string, string) {
	if names == nil {
		return nil, ""
	}
	if len(names) > maxLabelsPerEntry {
		return nil, "too many labels"
	}
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, "label names must not be blank"
		}
		cleaned = append(cleaned, name)
	}
	return cleaned, ""
}

func (s *Server) handleListCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	items, err := s.services.Collection.List(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, collectionResponse{Games: items})
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	var req addGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.GameID <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "gameId is required"})
		return
	}
	labels, reason := cleanLabels(req.Labels)
	if reason != "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: reason})
		return
	}

	item, err := s.services.Collection.AddGame(r.Context(), identity.UserID, req.GameID, req.Notes, labels)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	gameID, err := strconv.Atoi(r.PathValue("gameId"))
	if err != nil || gameID <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid game id"})
		return
	}

	var req updateGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	labels, reason := cleanLabels(req.Labels)
	if reason != "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: reason})
		return
	}

	item, svcErr := s.services.Collection.UpdateGame(r.Context(), identity.UserID, gameID, req.Notes, labels)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemoveGame(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	gameID, err := strconv.Atoi(r.PathValue("gameId"))
	if err != nil || gameID <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid game id"})
		return
	}

	if svcErr := s.services.Collection.RemoveGame(r.Context(), identity.UserID, gameID); svcErr != nil {
		respondError(w, svcErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
