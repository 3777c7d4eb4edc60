package loan

import (
	"context"
	"time"
)

// Repository defines the contract for loan data storage.
//
// Update must only apply while the persisted row is still ACTIVE and
// return ErrNotActive otherwise, so a concurrent close cannot be
// overwritten. Loans are never deleted; the table is the audit trail.
type Repository interface {
	List(ctx context.Context) ([]Loan, error)
	GetByID(ctx context.Context, id string) (Loan, error)
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	ListByStatus(ctx context.Context, status string) ([]Loan, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, l *Loan) error
	Update(ctx context.Context, l *Loan) error

	// Reopen reverts a RETURNED row to ACTIVE. It exists solely so a
	// return whose ledger release failed can be rolled back and retried;
	// it is not a caller-facing transition.
	Reopen(ctx context.Context, id string) error
}
