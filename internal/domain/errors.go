package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart indicates checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrHasOrders indicates a user cannot be deleted while orders reference them.
	ErrHasOrders = errors.New("user has orders")
	// ErrInUse indicates an entity cannot be deleted while other rows reference it.
	ErrInUse = errors.New("still referenced")
)

// ValidationError marks rejected user input. The HTTP layer turns it into
// a 400 instead of a 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OrderabilityError reports a cart line whose book is no longer purchasable.
// Checkout aborts as a whole and keeps the cart so the customer can remove
// the offending line and retry.
type OrderabilityError struct {
	BookID int64
}

func (e *OrderabilityError) Error() string {
	return fmt.Sprintf("book %d is no longer available for purchase", e.BookID)
}
