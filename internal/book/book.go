package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrAlreadyExists is returned when a book with the same ISBN exists.
var ErrAlreadyExists = errors.New("book already exists")

// ErrNoCopies is returned when a reservation finds no available copies.
var ErrNoCopies = errors.New("no copies available")

// ErrHasLoans is returned when deleting a book whose loan history must
// be preserved as an audit trail.
var ErrHasLoans = errors.New("book has loan history")

// ErrInvariantViolation is returned when a release would push
// available_copies past total_copies. It indicates a prior accounting
// bug and is surfaced rather than clamped.
var ErrInvariantViolation = errors.New("copy count invariant violation")

// Book represents a book entity. AvailableCopies is owned by the
// reservation ledger (Reserve/Release); Available is always recomputed
// from it and never set independently.
type Book struct {
	ID              string    `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description,omitempty"`
	PublishedYear   *int      `json:"published_year,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
