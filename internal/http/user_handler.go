package http

import (
	"encoding/json"
	"net/http"

	"elibrary/internal/user"
)

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// @Summary List members
// @Tags users
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, users, nil)
}

// @Summary Get member by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccess(w, u, nil)
}

// @Summary Register a member
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		return
	}
	if u.Name == "" || u.Email == "" {
		JSONError(w, http.StatusBadRequest, "MISSING_FIELD", "name and email are required")
		return
	}
	if err := h.svc.Register(r.Context(), &u); err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, u)
}

// @Summary Activate or deactivate a member
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/active [patch]
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		return
	}
	if err := h.svc.SetActive(r.Context(), r.PathValue("id"), req.Active); err != nil {
		writeDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}
