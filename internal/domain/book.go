package domain

import "github.com/shopspring/decimal"

// Book represents a title sold in the store, including pricing and its
// author/genre/publisher references.
type Book struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description,omitempty"`
	AuthorID       int64           `json:"authorId"`
	GenreID        int64           `json:"genreId"`
	PublisherID    int64           `json:"publisherId"`
	AuthorName     string          `json:"authorName,omitempty"`
	GenreName      string          `json:"genreName,omitempty"`
	PublisherName  string          `json:"publisherName,omitempty"`
	CoverImagePath string          `json:"coverImagePath,omitempty"`
}

// Reference is a named lookup row (author, genre, publisher). The three kinds
// share shape and persistence; only the table differs.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
