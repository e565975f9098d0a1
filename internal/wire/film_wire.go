package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFilm(
	r chi.Router,
	filmHandler *adaptor.FilmHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/film - Film catalog; ?day= and ?sort_by= narrow and order it
	r.Get("/api/film", filmHandler.List)

	// GET /api/film/{id} - Film details
	r.Get("/api/film/{id}", filmHandler.GetByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.AuthSession, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/film - Create film
		r.Post("/api/film", filmHandler.Create)

		// PUT /api/film/{id} - Update film
		r.Put("/api/film/{id}", filmHandler.Update)

		// DELETE /api/film/{id} - Delete film
		r.Delete("/api/film/{id}", filmHandler.Delete)
	})
}
