package collection

import "time"

// Label is a free-text tag scoped per owner: two owners may each have a
// "Strategy" label as independent rows, but one owner never has two rows
// with the same name. Labels are referenced by entries, not owned by them:
// unlinking an entry does not delete the label.
type Label struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Entry is one board game in a user's collection. UserID is the owner, set
// at creation and never reassigned.
type Entry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	GameID     int       `json:"game_id"`
	Notes      string    `json:"notes,omitempty"`
	Labels     []Label   `json:"labels"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Item is an entry enriched with the owner's own review rating for the
// game, when one exists.
type Item struct {
	Entry
	UserRating *int `json:"user_rating"`
}
