package domain

import "time"

// Review is a user-submitted rating and comment on a book.
type Review struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"bookId"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username,omitempty"`
	BookTitle string `json:"bookTitle,omitempty"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
}

// Favorite marks a book a user pinned for quick access.
type Favorite struct {
	UserID    int64     `json:"userId"`
	BookID    int64     `json:"bookId"`
	CreatedAt time.Time `json:"createdAt"`
}
