package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	purchaseHandler *adaptor.PurchaseHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/session - Session listing; ?day=today|tomorrow narrows it
	r.Get("/api/session", sessionHandler.List)

	// GET /api/session/{id} - Session details
	r.Get("/api/session/{id}", sessionHandler.GetByID)

	// GET /api/film/{id}/session - Sessions of one film
	r.Get("/api/film/{id}/session", sessionHandler.ListByFilm)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.AuthSession, repo.User, log))

		// POST /api/session/{id}/purchase - Buy tickets for a session
		r.Post("/api/session/{id}/purchase", purchaseHandler.Create)

		// GET /api/session/{id}/purchase - Tickets of a session (owner scoped)
		r.Get("/api/session/{id}/purchase", purchaseHandler.ListBySession)

		// GET /api/purchase - The caller's tickets (admin: every ticket)
		r.Get("/api/purchase", purchaseHandler.List)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.AuthSession, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/session - Create sessions (template expansion)
		r.Post("/api/session", sessionHandler.Create)

		// PUT /api/session/{id} - Update session (blocked once tickets are sold)
		r.Put("/api/session/{id}", sessionHandler.Update)

		// DELETE /api/session/{id} - Delete session
		r.Delete("/api/session/{id}", sessionHandler.Delete)

		// GET /api/purchase/{id} - Ticket details
		r.Get("/api/purchase/{id}", purchaseHandler.GetByID)
	})
}
