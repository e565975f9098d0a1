package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FilmHandler struct {
	service usecase.FilmService
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		log:     log.With(zap.String("handler", "film")),
	}
}

// Create handles POST /api/film (admin only)
func (h *FilmHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create film")
		return
	}

	utils.ResponseCreated(w, "success", film)
}

// List handles GET /api/film (public). Without a day filter the whole
// catalog is returned; with ?day=today|tomorrow only films screening on that
// date, ordered by ?sort_by=price|time when given.
func (h *FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	day := query.Get("day")
	sortBy := query.Get("sort_by")

	if day == "" {
		films, err := h.service.List(r.Context())
		if err != nil {
			handleServiceError(h.log, w, err, "list films")
			return
		}
		utils.ResponseSuccess(w, "success", films)
		return
	}

	films, err := h.service.ListByDay(r.Context(), day, sortBy)
	if err != nil {
		handleServiceError(h.log, w, err, "list films by day")
		return
	}

	utils.ResponseSuccess(w, "success", films)
}

// GetByID handles GET /api/film/{id} (public)
func (h *FilmHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "id")
	if filmID == "" {
		utils.ResponseBadRequest(w, "Film ID is required", nil)
		return
	}

	film, err := h.service.GetByID(r.Context(), filmID)
	if err != nil {
		handleServiceError(h.log, w, err, "get film")
		return
	}

	utils.ResponseSuccess(w, "success", film)
}

// Update handles PUT /api/film/{id} (admin only)
func (h *FilmHandler) Update(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "id")
	if filmID == "" {
		utils.ResponseBadRequest(w, "Film ID is required", nil)
		return
	}

	var req request.UpdateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.Update(r.Context(), filmID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update film")
		return
	}

	utils.ResponseSuccess(w, "success", film)
}

// Delete handles DELETE /api/film/{id} (admin only)
func (h *FilmHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "id")
	if filmID == "" {
		utils.ResponseBadRequest(w, "Film ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), filmID); err != nil {
		handleServiceError(h.log, w, err, "delete film")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
