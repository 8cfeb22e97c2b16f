package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
	"github.com/felipe-lpz/piupiuwer/internal/service"
)

// errPiuFieldsRequired is a transport-level pre-check message; the service
// never sees requests missing these fields.
var errPiuFieldsRequired = errors.New("userId e text são campos obrigatórios")

// PiuHandler handles HTTP requests for pius.
type PiuHandler struct {
	pius   *service.PiuService
	logger *slog.Logger
}

// NewPiuHandler creates a new piu handler.
func NewPiuHandler(pius *service.PiuService, logger *slog.Logger) *PiuHandler {
	return &PiuHandler{
		pius:   pius,
		logger: logger,
	}
}

// Routes returns the routes for pius.
func (h *PiuHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePiu)
	r.Get("/", h.ListPius)
	r.Get("/user/{userId}", h.ListPiusByUser)
	r.Get("/search", h.SearchPius)
	r.Get("/trending/{count}", h.TrendingPius)
	r.Get("/{id}", h.GetPiu)
	r.Delete("/{id}", h.DeletePiu)

	return r
}

// CreatePiuRequest is the request body for creating a piu.
type CreatePiuRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// CreatePiu creates a new piu.
func (h *PiuHandler) CreatePiu(w http.ResponseWriter, r *http.Request) {
	var req CreatePiuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errPiuFieldsRequired)
		return
	}

	if req.UserID == "" || req.Text == "" {
		renderError(w, r, errPiuFieldsRequired)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		renderError(w, r, domain.ErrUserNotFound)
		return
	}

	piu, err := h.pius.Create(r.Context(), userID, req.Text)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, piu)
}

// ListPius lists all pius.
func (h *PiuHandler) ListPius(w http.ResponseWriter, r *http.Request) {
	pius, err := h.pius.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list pius", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, pius)
}

// ListPiusByUser lists the pius of one user. An unknown user yields an
// empty list.
func (h *PiuHandler) ListPiusByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		render.JSON(w, r, []*domain.Piu{})
		return
	}

	pius, err := h.pius.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list pius by user", "user_id", userID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, pius)
}

// SearchPius returns the pius matching the q query parameter,
// case-insensitively. An empty q matches everything.
func (h *PiuHandler) SearchPius(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	pius, err := h.pius.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("search pius", "query", query, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, pius)
}

// TrendingPius returns count random pius. An unusable count falls back to
// the default.
func (h *PiuHandler) TrendingPius(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil || count <= 0 {
		count = service.DefaultTrendingCount
	}

	pius, err := h.pius.Trending(r.Context(), count)
	if err != nil {
		h.logger.Error("trending pius", "count", count, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, pius)
}

// GetPiu retrieves a piu by ID.
func (h *PiuHandler) GetPiu(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, domain.ErrPiuNotFound)
		return
	}

	piu, err := h.pius.FindByID(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, piu)
}

// DeletePiu removes a piu.
func (h *PiuHandler) DeletePiu(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, domain.ErrPiuNotFound)
		return
	}

	if err := h.pius.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
