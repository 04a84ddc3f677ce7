package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/calref/user-api/internal/api/shared"
	"github.com/calref/user-api/internal/platform/logger"
	"github.com/calref/user-api/internal/service"
	"github.com/calref/user-api/internal/store"
)

// defaultListLimit caps a list request that does not supply its own limit.
const defaultListLimit = 100

// UserHandler handles the /users resource.
type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a UserHandler backed by the given service.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    NewValidator(),
	}
}

// List handles GET /users/?skip=&limit=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, ok := ParseQueryInt(w, r, "skip", 0)
	if !ok {
		return
	}
	limit, ok := ParseQueryInt(w, r, "limit", defaultListLimit)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserListResponse(users))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParsePathID(w, r, chi.URLParam(r, "userID"), "user_id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Create handles POST /users/.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !ValidateStruct(w, r, h.validate, req) {
		return
	}

	// Reject duplicates up front for a friendly error; the unique
	// constraint on users.email remains the authoritative guard against
	// the race between this check and the insert.
	if _, err := h.userService.GetUserByEmail(r.Context(), req.Email); err == nil {
		logger.FromContext(r.Context()).Warn("attempt to create user with existing email",
			"email", req.Email)
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Email already registered", shared.HTTPErrorCode(http.StatusBadRequest))
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		respondServiceError(w, r, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := h.userService.CreateUser(r.Context(),
		req.Email, req.FirstName, req.LastName, req.Password, isActive)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// Update handles PUT /users/{id}. Only fields present in the body are
// applied.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParsePathID(w, r, chi.URLParam(r, "userID"), "user_id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !ValidateStruct(w, r, h.validate, req) {
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, req.ToDomain())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParsePathID(w, r, chi.URLParam(r, "userID"), "user_id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
