package server

import "net/http"

func (s *Server) initRoutes() {
	s.handle(http.MethodPost, RouteAuthRegister, s.handleRegister)
	s.handle(http.MethodPost, RouteAuthLogin, s.handleLogin)
	s.handle(http.MethodPost, RouteAuthRefresh, s.handleRefresh)

	s.handle(http.MethodGet, RouteUsersMe, s.handleGetProfile)
	s.handle(http.MethodPut, RouteUsersMe, s.handleUpdateProfile)
	s.handle(http.MethodDelete, RouteUsersMe, s.handleDeleteAccount)

	s.handle(http.MethodPost, RouteReviews, s.handleCreateReview)
	s.handle(http.MethodGet, RouteReviewsMe, s.handleListMyReviews)
	s.handle(http.MethodGet, RouteReviewsByGame, s.handleListGameReviews)
	s.handle(http.MethodGet, RouteReviewByID, s.handleGetReview)
	s.handle(http.MethodPut, RouteReviewByID, s.handleUpdateReview)
	s.handle(http.MethodDelete, RouteReviewByID, s.handleDeleteReview)

	s.handle(http.MethodGet, RouteCollections, s.handleListCollection)
	s.handle(http.MethodPost, RouteCollectionGames, s.handleAddGame)
	s.handle(http.MethodPut, RouteCollectionGameByID, s.handleUpdateGame)
	s.handle(http.MethodDelete, RouteCollectionGameByID, s.handleRemoveGame)
}

func (s *Server) handle(method, path string, handler http.HandlerFunc) {
	s.RegisterRouteHandler(method+" "+path, ChainMiddleware(handler, s.APIMiddleware()...))
}
