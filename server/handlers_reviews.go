package server

import (
	"net/http"
	"strconv"
)

type reviewRequest struct {
	GameID     int    `json:"gameId"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

type updateReviewRequest struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.GameID <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "gameId is required"})
		return
	}
	if !validRating(req.Rating) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "rating must be between 1 and 5"})
		return
	}

	review, err := s.services.Reviews.Create(r.Context(), identity.UserID, req.GameID, req.Rating, req.ReviewText)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(r.PathValue("reviewId"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid review id"})
		return
	}

	review, svcErr := s.services.Reviews.Get(r.Context(), reviewID)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleListMyReviews(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	list, err := s.services.Reviews.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleListGameReviews(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(r.PathValue("gameId"))
	if err != nil || gameID <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid game id"})
		return
	}

	result, svcErr := s.services.Reviews.ListByGame(r.Context(), gameID)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseInt(r.PathValue("reviewId"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid review id"})
		return
	}

	var req updateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validRating(req.Rating) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "rating must be between 1 and 5"})
		return
	}

	review, svcErr := s.services.Reviews.Update(r.Context(), identity.UserID, reviewID, req.Rating, req.ReviewText)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseInt(r.PathValue("reviewId"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid review id"})
		return
	}

	if svcErr := s.services.Reviews.Delete(r.Context(), identity.UserID, reviewID); svcErr != nil {
		respondError(w, svcErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
