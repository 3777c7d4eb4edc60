package book

import (
	"context"
)

// Repository defines the contract for book data storage.
//
// Reserve and Release are the inventory ledger: both must apply their
// count change as a single atomic conditional write so that two
// concurrent reservations can never both take the last copy.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	ListAvailable(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, b *Book) error

	// Update writes catalog fields only. AvailableCopies on the input is
	// ignored; a total_copies change adjusts the ledger's count by the
	// same delta, and the stored counters are written back to b.
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id string) error

	// Reserve decrements available_copies by one if any copy remains,
	// returning the updated count. Fails with ErrNoCopies when the count
	// is already zero at the moment of application.
	Reserve(ctx context.Context, id string) (int, error)

	// Release increments available_copies by one, refusing to exceed
	// total_copies (ErrInvariantViolation).
	Release(ctx context.Context, id string) (int, error)
}
