package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Account management rides on the registration path. Everything requires
	// auth; cross-account access is limited to admins inside the handlers.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.AuthSession, repo.User, log))

		// GET /api/registration - Admin sees all accounts, others their own
		r.Get("/api/registration", userHandler.List)

		// GET /api/registration/{id} - Account details (self or admin)
		r.Get("/api/registration/{id}", userHandler.GetByID)

		// PUT /api/registration/{id} - Update account (self or admin)
		r.Put("/api/registration/{id}", userHandler.Update)

		// DELETE /api/registration/{id} - Delete account (self or admin)
		r.Delete("/api/registration/{id}", userHandler.Delete)
	})
}
