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

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// List handles GET /api/registration (protected). Admins see every account,
// everyone else sees only their own.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	if role == string(entity.RoleAdmin) {
		users, err := h.service.List(r.Context())
		if err != nil {
			handleServiceError(h.log, w, err, "list users")
			return
		}
		utils.ResponseSuccess(w, "success", users)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID.String())
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", []any{user})
}

// GetByID handles GET /api/registration/{id} (protected, self or admin)
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	if !h.selfOrAdmin(w, r, targetID) {
		return
	}

	user, err := h.service.GetByID(r.Context(), targetID)
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// Update handles PUT /api/registration/{id} (protected, self or admin)
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	if !h.selfOrAdmin(w, r, targetID) {
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.Update(r.Context(), targetID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// Delete handles DELETE /api/registration/{id} (protected, self or admin)
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	if !h.selfOrAdmin(w, r, targetID) {
		return
	}

	if err := h.service.Delete(r.Context(), targetID); err != nil {
		handleServiceError(h.log, w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// selfOrAdmin writes the error response and returns false when the caller is
// neither the target account nor an admin.
func (h *UserHandler) selfOrAdmin(w http.ResponseWriter, r *http.Request, targetID string) bool {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return false
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	if role != string(entity.RoleAdmin) && userID.String() != targetID {
		h.log.Warn("Cross-account access attempt",
			zap.String("user_id", userID.String()),
			zap.String("target_id", targetID))
		utils.ResponseForbidden(w, "Access denied")
		return false
	}

	return true
}
