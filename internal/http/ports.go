package http

import (
	"context"

	"elibrary/internal/book"
	"elibrary/internal/loan"
	"elibrary/internal/user"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_services.go -package=mocks

// LoanService is the loan-lifecycle surface the handlers depend on.
type LoanService interface {
	Checkout(ctx context.Context, bookID, userID string) (loan.Loan, error)
	Return(ctx context.Context, loanID string) (loan.Loan, error)
	Extend(ctx context.Context, loanID string, days int) (loan.Loan, error)
	List(ctx context.Context) ([]loan.Loan, error)
	GetByID(ctx context.Context, id string) (loan.Loan, error)
	ListByUser(ctx context.Context, userID string) ([]loan.Loan, error)
	ListActive(ctx context.Context) ([]loan.Loan, error)
	ListOverdue(ctx context.Context) ([]loan.Loan, error)
}

// BookService is the catalog surface the handlers depend on.
type BookService interface {
	List(ctx context.Context) ([]book.Book, error)
	ListAvailable(ctx context.Context) ([]book.Book, error)
	GetByID(ctx context.Context, id string) (book.Book, error)
	Create(ctx context.Context, b *book.Book) error
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id string) error
}

// UserService is the member-directory surface the handlers depend on.
type UserService interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Register(ctx context.Context, u *user.User) error
	SetActive(ctx context.Context, id string, active bool) error
}
