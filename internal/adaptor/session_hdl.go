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

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// Create handles POST /api/session (admin only). The request is a template:
// one session per day of the film's run is created and returned.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	sessions, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create session")
		return
	}

	utils.ResponseCreated(w, "success", sessions)
}

// List handles GET /api/session (public). ?day=today|tomorrow narrows the
// listing to that date.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")

	if day == "" {
		sessions, err := h.service.List(r.Context())
		if err != nil {
			handleServiceError(h.log, w, err, "list sessions")
			return
		}
		utils.ResponseSuccess(w, "success", sessions)
		return
	}

	sessions, err := h.service.ListByDay(r.Context(), day)
	if err != nil {
		handleServiceError(h.log, w, err, "list sessions by day")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

// ListByFilm handles GET /api/film/{id}/session (public)
func (h *SessionHandler) ListByFilm(w http.ResponseWriter, r *http.Request) {
	filmID := chi.URLParam(r, "id")
	if filmID == "" {
		utils.ResponseBadRequest(w, "Film ID is required", nil)
		return
	}

	sessions, err := h.service.ListByFilm(r.Context(), filmID)
	if err != nil {
		handleServiceError(h.log, w, err, "list sessions by film")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

// GetByID handles GET /api/session/{id} (public)
func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	session, err := h.service.GetByID(r.Context(), sessionID)
	if err != nil {
		handleServiceError(h.log, w, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// Update handles PUT /api/session/{id} (admin only)
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.Update(r.Context(), sessionID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// Delete handles DELETE /api/session/{id} (admin only)
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), sessionID); err != nil {
		handleServiceError(h.log, w, err, "delete session")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
