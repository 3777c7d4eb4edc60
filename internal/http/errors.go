package http

import (
	"errors"
	"net/http"

	"elibrary/internal/book"
	"elibrary/internal/loan"
	"elibrary/internal/user"
)

// writeDomainError maps domain sentinels onto HTTP statuses. Everything
// unrecognized is a 500 with no detail leaked.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, book.ErrNotFound):
		JSONError(w, http.StatusNotFound, "BOOK_NOT_FOUND", err.Error())
	case errors.Is(err, user.ErrNotFound):
		JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
	case errors.Is(err, loan.ErrNotFound):
		JSONError(w, http.StatusNotFound, "LOAN_NOT_FOUND", err.Error())
	case errors.Is(err, loan.ErrUserInactive):
		JSONError(w, http.StatusConflict, "USER_INACTIVE", err.Error())
	case errors.Is(err, book.ErrNoCopies):
		JSONError(w, http.StatusConflict, "NO_COPIES_AVAILABLE", err.Error())
	case errors.Is(err, loan.ErrLimitReached):
		JSONError(w, http.StatusConflict, "LOAN_LIMIT_REACHED", err.Error())
	case errors.Is(err, loan.ErrAlreadyReturned):
		JSONError(w, http.StatusConflict, "ALREADY_RETURNED", err.Error())
	case errors.Is(err, loan.ErrNotActive):
		JSONError(w, http.StatusConflict, "LOAN_NOT_ACTIVE", err.Error())
	case errors.Is(err, loan.ErrInvalidExtension):
		JSONError(w, http.StatusBadRequest, "INVALID_EXTENSION_PERIOD", err.Error())
	case errors.Is(err, book.ErrHasLoans):
		JSONError(w, http.StatusConflict, "BOOK_HAS_LOANS", err.Error())
	case errors.Is(err, book.ErrAlreadyExists):
		JSONError(w, http.StatusConflict, "BOOK_ALREADY_EXISTS", err.Error())
	case errors.Is(err, user.ErrAlreadyExists):
		JSONError(w, http.StatusConflict, "USER_ALREADY_EXISTS", err.Error())
	case errors.Is(err, book.ErrInvariantViolation):
		JSONError(w, http.StatusInternalServerError, "INVARIANT_VIOLATION", err.Error())
	default:
		JSONError(w, http.StatusInternalServerError, "INTERNAL", "server error")
	}
}
