package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
	"github.com/felipe-lpz/piupiuwer/internal/repository"
	"github.com/felipe-lpz/piupiuwer/internal/service"
)

// errInvalidBirth is a transport-level error: the birth field was supplied
// but is not a date parseBirth understands. Distinct from the missing-fields
// message, which covers absent fields only.
var errInvalidBirth = errors.New("Data de nascimento inválida")

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// Routes returns the routes for users.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateUser)
	r.Get("/", h.ListUsers)
	r.Get("/{id}", h.GetUser)
	r.Patch("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)

	return r
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Birth    string `json:"birth"`
	CPF      string `json:"cpf"`
	Phone    string `json:"phone"`
	About    string `json:"about"`
}

// UpdateUserRequest is the request body for a partial user update. Absent
// fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Birth    *string `json:"birth"`
	CPF      *string `json:"cpf"`
	Phone    *string `json:"phone"`
	About    *string `json:"about"`
}

// CreateUser creates a new user.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, domain.ErrMissingFields)
		return
	}

	if req.Username == "" || req.Email == "" || req.Name == "" ||
		req.Birth == "" || req.CPF == "" || req.Phone == "" {
		renderError(w, r, domain.ErrMissingFields)
		return
	}

	birth, err := parseBirth(req.Birth)
	if err != nil {
		renderError(w, r, errInvalidBirth)
		return
	}

	user, err := h.users.Create(r.Context(), repository.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Birth:    birth,
		CPF:      req.CPF,
		Phone:    req.Phone,
		About:    req.About,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}

// ListUsers lists all users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list users", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, users)
}

// GetUser retrieves a user by ID.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, domain.ErrUserNotFound)
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// UpdateUser partially updates a user.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, domain.ErrUserNotFound)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, domain.ErrMissingFields)
		return
	}

	var birth *time.Time
	if req.Birth != nil {
		parsed, err := parseBirth(*req.Birth)
		if err != nil {
			renderError(w, r, errInvalidBirth)
			return
		}
		birth = &parsed
	}

	user, err := h.users.Update(r.Context(), id, repository.UpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Birth:    birth,
		CPF:      req.CPF,
		Phone:    req.Phone,
		About:    req.About,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// DeleteUser removes a user and all of its pius.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, domain.ErrUserNotFound)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
