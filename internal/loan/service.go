package loan

import (
	"context"
	"errors"
	"log"
	"time"

	"elibrary/internal/book"
	"elibrary/internal/user"
)

// Service orchestrates the loan lifecycle against the book ledger and
// the loan store.
//
// The copy-count invariant is carried by the ledger's atomic Reserve:
// the eligibility snapshot may go stale between check and reservation,
// and a lost race surfaces as book.ErrNoCopies with no loan written.
// The per-user loan limit is best effort under concurrency: two
// simultaneous checkouts by one user can transiently overshoot the
// limit by one before settling.
type Service struct {
	loans Repository
	books book.Repository
	users user.Repository
	now   func() time.Time
}

func NewService(loans Repository, books book.Repository, users user.Repository) *Service {
	return &Service{
		loans: loans,
		books: books,
		users: users,
		now:   time.Now,
	}
}

// Checkout lends one copy of bookID to userID.
func (s *Service) Checkout(ctx context.Context, bookID, userID string) (Loan, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Loan{}, err
	}
	// First failure wins: an inactive account is reported before
	// anything about the book.
	if !u.Active {
		return Loan{}, ErrUserInactive
	}
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return Loan{}, err
	}
	active, err := s.loans.CountActiveByUser(ctx, userID)
	if err != nil {
		return Loan{}, err
	}
	if err := CheckEligibility(u, b, active); err != nil {
		return Loan{}, err
	}

	// The reservation, not the check above, decides who gets the last
	// copy.
	if _, err := s.books.Reserve(ctx, bookID); err != nil {
		return Loan{}, err
	}

	l := Open(bookID, userID, s.now())
	if err := s.loans.Create(ctx, &l); err != nil {
		// Give the copy back so the ledger never counts a loan that was
		// not written.
		if _, relErr := s.books.Release(ctx, bookID); relErr != nil {
			log.Printf("checkout compensation failed for book %s: %v", bookID, relErr)
		}
		return Loan{}, err
	}
	return l, nil
}

// Return closes the loan and releases its copy. Duplicate returns fail
// with ErrAlreadyReturned and touch the ledger exactly zero times.
func (s *Service) Return(ctx context.Context, loanID string) (Loan, error) {
	l, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return Loan{}, err
	}
	if err := l.Close(s.now()); err != nil {
		return Loan{}, err
	}
	if err := s.loans.Update(ctx, &l); err != nil {
		// The persisted row left ACTIVE between our read and write; the
		// only transition out of ACTIVE is a completed return.
		if errors.Is(err, ErrNotActive) {
			return Loan{}, ErrAlreadyReturned
		}
		return Loan{}, err
	}
	if _, err := s.books.Release(ctx, l.BookID); err != nil {
		// Roll the row back to ACTIVE so the copy is not stranded and
		// the return can be retried once the ledger recovers.
		if reopenErr := s.loans.Reopen(ctx, l.ID); reopenErr != nil {
			log.Printf("return compensation failed for loan %s: %v", l.ID, reopenErr)
		}
		return Loan{}, err
	}
	return l, nil
}

// Extend pushes an active loan's due date forward by days. The ledger
// is not involved.
func (s *Service) Extend(ctx context.Context, loanID string, days int) (Loan, error) {
	l, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return Loan{}, err
	}
	if err := l.Extend(days); err != nil {
		return Loan{}, err
	}
	if err := s.loans.Update(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context) ([]Loan, error) {
	return s.loans.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Loan, error) {
	return s.loans.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Loan, error) {
	return s.loans.ListByUser(ctx, userID)
}

func (s *Service) ListActive(ctx context.Context) ([]Loan, error) {
	return s.loans.ListByStatus(ctx, StatusActive)
}

// ListOverdue reports active loans whose due date has passed. Overdue
// is computed here at read time, never written back.
func (s *Service) ListOverdue(ctx context.Context) ([]Loan, error) {
	return s.loans.ListOverdue(ctx, s.now())
}
