package loan

import (
	"elibrary/internal/book"
	"elibrary/internal/user"
)

// CheckEligibility decides whether u may check out b given their current
// active-loan count. Rules run in order and the first failure wins. Pure
// and side-effect free; the ledger's atomic reservation remains the
// final arbiter for the copy count, this is only the fast path.
func CheckEligibility(u user.User, b book.Book, activeLoans int) error {
	if !u.Active {
		return ErrUserInactive
	}
	if b.AvailableCopies <= 0 {
		return book.ErrNoCopies
	}
	if activeLoans >= MaxLoansPerUser {
		return ErrLimitReached
	}
	return nil
}
