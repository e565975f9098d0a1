package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHall(
	r chi.Router,
	hallHandler *adaptor.HallHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	// The whole hall surface is admin only.
	r.Route("/api/hall", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.AuthSession, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/hall - Create hall
		r.Post("/", hallHandler.Create)

		// GET /api/hall - List halls
		r.Get("/", hallHandler.List)

		// GET /api/hall/{id} - Hall details
		r.Get("/{id}", hallHandler.GetByID)

		// PUT /api/hall/{id} - Update hall (blocked once tickets are sold)
		r.Put("/{id}", hallHandler.Update)

		// DELETE /api/hall/{id} - Delete hall
		r.Delete("/{id}", hallHandler.Delete)
	})
}
