package http

import (
	"encoding/json"
	"net/http"

	"elibrary/internal/book"
)

type BookHandler struct {
	svc BookService
}

func NewBookHandler(svc BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

type bookRequest struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedYear *int   `json:"published_year"`
	TotalCopies   int    `json:"total_copies"`
}

// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, books, nil)
}

// @Summary List books with available copies
// @Tags books
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /books/available [get]
func (h *BookHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListAvailable(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, books, nil)
}

// @Summary Get book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, b, nil)
}

// @Summary Add a book to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		return
	}
	if req.Title == "" || req.Author == "" {
		JSONError(w, http.StatusBadRequest, "MISSING_FIELD", "title and author are required")
		return
	}
	b := book.Book{
		ISBN:          req.ISBN,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
		TotalCopies:   req.TotalCopies,
	}
	if err := h.svc.Create(r.Context(), &b); err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, b)
}

// @Summary Update catalog fields of a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		return
	}
	b.Title = req.Title
	b.Author = req.Author
	b.Description = req.Description
	b.PublishedYear = req.PublishedYear
	if req.TotalCopies > 0 {
		b.TotalCopies = req.TotalCopies
	}
	if err := h.svc.Update(r.Context(), &b); err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, b, nil)
}

// @Summary Remove a book from the catalog
// @Tags books
// @Param id path string true "Book ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}
