package http

import (
	"net/http"
	"strconv"

	"elibrary/internal/loan"
)

type LoanHandler struct {
	svc LoanService
}

func NewLoanHandler(svc LoanService) *LoanHandler {
	return &LoanHandler{svc: svc}
}

// @Summary List loans
// @Tags loans
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /loans [get]
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, loans, nil)
}

// @Summary Get loan by ID
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, l, nil)
}

// @Summary List loans for a user
// @Tags loans
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Router /loans/user/{userId} [get]
func (h *LoanHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, loans, nil)
}

// @Summary List active loans
// @Tags loans
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /loans/active [get]
func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListActive(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, loans, nil)
}

// @Summary List overdue loans
// @Description Active loans whose due date has passed, computed at read time
// @Tags loans
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /loans/overdue [get]
func (h *LoanHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListOverdue(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, loans, nil)
}

// @Summary Check out a book
// @Tags loans
// @Produce json
// @Param book_id query string true "Book ID"
// @Param user_id query string true "User ID"
// @Success 201 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /loans/checkout [post]
func (h *LoanHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("book_id")
	userID := r.URL.Query().Get("user_id")
	if bookID == "" || userID == "" {
		JSONError(w, http.StatusBadRequest, "MISSING_PARAM", "book_id and user_id are required")
		return
	}
	l, err := h.svc.Checkout(r.Context(), bookID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, l)
}

// @Summary Return a loaned book
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Return(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, l, nil)
}

// @Summary Extend a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Param days query int false "Extension in days" default(7)
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /loans/{id}/extend [post]
func (h *LoanHandler) Extend(w http.ResponseWriter, r *http.Request) {
	days := loan.DefaultExtensionDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "INVALID_EXTENSION_PERIOD", "days must be an integer")
			return
		}
		days = parsed
	}
	l, err := h.svc.Extend(r.Context(), r.PathValue("id"), days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, l, nil)
}
