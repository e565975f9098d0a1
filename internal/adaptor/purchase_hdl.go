package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	service usecase.PurchaseService
	log     *zap.Logger
}

func NewPurchaseHandler(service usecase.PurchaseService, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log.With(zap.String("handler", "purchase")),
	}
}

// Create handles POST /api/session/{id}/purchase (protected)
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	purchase, err := h.service.Create(r.Context(), sessionID, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create purchase")
		return
	}

	utils.ResponseCreated(w, "success", purchase)
}

// ListBySession handles GET /api/session/{id}/purchase (protected). Admins
// see every ticket of the session, customers only their own.
func (h *PurchaseHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	isAdmin := role == string(entity.RoleAdmin)

	purchases, err := h.service.ListBySession(r.Context(), sessionID, userID, isAdmin)
	if err != nil {
		handleServiceError(h.log, w, err, "list purchases")
		return
	}

	utils.ResponseSuccess(w, "success", purchases)
}

// List handles GET /api/purchase (protected). Admins get the whole ledger,
// customers their own tickets.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	if role == string(entity.RoleAdmin) {
		purchases, err := h.service.ListAll(r.Context())
		if err != nil {
			handleServiceError(h.log, w, err, "list purchases")
			return
		}
		utils.ResponseSuccess(w, "success", purchases)
		return
	}

	purchases, err := h.service.ListByBuyer(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list purchases")
		return
	}

	utils.ResponseSuccess(w, "success", purchases)
}

// GetByID handles GET /api/purchase/{id} (admin only)
func (h *PurchaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	purchaseID := chi.URLParam(r, "id")
	if purchaseID == "" {
		utils.ResponseBadRequest(w, "Purchase ID is required", nil)
		return
	}

	purchase, err := h.service.GetByID(r.Context(), purchaseID)
	if err != nil {
		handleServiceError(h.log, w, err, "get purchase")
		return
	}

	utils.ResponseSuccess(w, "success", purchase)
}
