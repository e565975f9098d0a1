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

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// Create handles POST /api/hall (admin only)
func (h *HallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "success", hall)
}

// List handles GET /api/hall (admin only)
func (h *HallHandler) List(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list halls")
		return
	}

	utils.ResponseSuccess(w, "success", halls)
}

// GetByID handles GET /api/hall/{id} (admin only)
func (h *HallHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	hall, err := h.service.GetByID(r.Context(), hallID)
	if err != nil {
		handleServiceError(h.log, w, err, "get hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// Update handles PUT /api/hall/{id} (admin only)
func (h *HallHandler) Update(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	var req request.UpdateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.Update(r.Context(), hallID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// Delete handles DELETE /api/hall/{id} (admin only)
func (h *HallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), hallID); err != nil {
		handleServiceError(h.log, w, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
