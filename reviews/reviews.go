package reviews

import "time"

// Review is a user's rating and write-up for one game. UserID is the owner,
// set at creation and never reassigned; only the owner may update or delete
// the review.
type Review struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"` // joined from the user record on reads
	GameID     int       `json:"game_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GameReviews is the aggregate view of all reviews for one game.
type GameReviews struct {
	Reviews       []Review `json:"reviews"`
	TotalCount    int64    `json:"total_count"`
	AverageRating *float64 `json:"average_rating"` // nil when the game has no reviews
}
