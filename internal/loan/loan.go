package loan

import (
	"errors"
	"time"
)

const (
	StatusActive   = "ACTIVE"
	StatusReturned = "RETURNED"
)

const (
	// MaxLoansPerUser caps a member's concurrent active loans.
	MaxLoansPerUser = 5
	// DefaultLoanPeriodDays is the checkout-to-due window.
	DefaultLoanPeriodDays = 14
	// DefaultExtensionDays is applied when an extension gives no length.
	DefaultExtensionDays = 7
)

// ErrNotFound is returned when a loan is not found.
var ErrNotFound = errors.New("loan not found")

// ErrUserInactive is returned when the borrowing user is deactivated.
var ErrUserInactive = errors.New("user account is not active")

// ErrLimitReached is returned when a user is at MaxLoansPerUser.
var ErrLimitReached = errors.New("user has reached maximum loan limit")

// ErrAlreadyReturned is returned when closing a loan twice.
var ErrAlreadyReturned = errors.New("book has already been returned")

// ErrNotActive is returned when mutating a loan that is not active.
var ErrNotActive = errors.New("loan is not active")

// ErrInvalidExtension is returned for a non-positive extension period.
var ErrInvalidExtension = errors.New("extension period must be positive")

// Loan is the record of one copy lent to one user. Status only ever
// moves ACTIVE -> RETURNED; RETURNED is terminal. Overdue is a derived
// read-time classification, never persisted.
type Loan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	UserID     string     `json:"user_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Denormalized for listings; populated by joins, not stored.
	BookTitle string `json:"book_title,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// Open creates a new active loan starting at now with the default
// period.
func Open(bookID, userID string, now time.Time) Loan {
	return Loan{
		BookID:   bookID,
		UserID:   userID,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, DefaultLoanPeriodDays),
		Status:   StatusActive,
	}
}

// Close transitions the loan to RETURNED and stamps the return date.
func (l *Loan) Close(now time.Time) error {
	if l.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	l.Status = StatusReturned
	l.ReturnDate = &now
	return nil
}

// Extend pushes the due date forward by days. Only active loans can be
// extended, and only forward.
func (l *Loan) Extend(days int) error {
	if l.Status != StatusActive {
		return ErrNotActive
	}
	if days <= 0 {
		return ErrInvalidExtension
	}
	l.DueDate = l.DueDate.AddDate(0, 0, days)
	return nil
}

// Overdue reports whether the loan is active with a due date in the
// past. An overdue loan is still returnable; this is a label, not a
// state.
func (l *Loan) Overdue(now time.Time) bool {
	return l.Status == StatusActive && l.DueDate.Before(now)
}
