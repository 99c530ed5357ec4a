package server

// API route paths
const (
	RouteAuthRegister = "/api/v1/auth/register"
	RouteAuthLogin    = "/api/v1/auth/login"
	RouteAuthRefresh  = "/api/v1/auth/refresh"

	RouteUsersMe = "/api/v1/users/me"

	RouteReviews       = "/api/v1/reviews"
	RouteReviewsMe     = "/api/v1/reviews/me"
	RouteReviewByID    = "/api/v1/reviews/{reviewId}"
	RouteReviewsByGame = "/api/v1/reviews/games/{gameId}"

	RouteCollections        = "/api/v1/collections"
	RouteCollectionGames    = "/api/v1/collections/games"
	RouteCollectionGameByID = "/api/v1/collections/games/{gameId}"
)
