package web

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the browser front-end. The SessionCookie middleware runs on
// every page so the idle-logout policy covers anonymous-looking requests
// that still carry a stale cookie.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.SessionCookie)

		// Public pages
		r.Get("/", h.Home)
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)

		// Authenticated pages
		r.Group(func(r chi.Router) {
			r.Use(h.RequireUser)

			r.Get("/create_purchase/{session_id}", h.CreatePurchasePage)
			r.Post("/create_purchase/{session_id}", h.CreatePurchase)
			r.Get("/cart", h.Cart)
		})

		// Admin pages
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)

			r.Get("/create_hall", h.CreateHallPage)
			r.Post("/create_hall", h.CreateHall)
			r.Get("/update_hall/{id}", h.UpdateHallPage)
			r.Post("/update_hall/{id}", h.UpdateHall)
			r.Get("/create_film", h.CreateFilmPage)
			r.Post("/create_film", h.CreateFilm)
			r.Get("/create_session", h.CreateSessionPage)
			r.Post("/create_session", h.CreateSession)
			r.Get("/update_session/{id}", h.UpdateSessionPage)
			r.Post("/update_session/{id}", h.UpdateSession)
		})
	})
}
