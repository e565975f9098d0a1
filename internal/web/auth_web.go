package web

import (
	"net/http"

	"cinema-tickets/internal/dto/request"

	"go.uber.org/zap"
)

// LoginPage handles GET /login
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", nil, "")
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	auth, err := h.service.Auth.Login(r.Context(), &req)
	if err != nil {
		h.log.Warn("Web login failed", zap.Error(err), zap.String("username", req.Username))
		h.render(w, r, "login.html", nil, "Invalid username or password.")
		return
	}

	h.setSessionCookie(w, auth.Token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := tokenFromRequest(r); token != "" {
		if err := h.service.Auth.Logout(r.Context(), token); err != nil {
			h.log.Warn("Web logout failed", zap.Error(err))
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// RegisterPage handles GET /register
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", nil, "")
}

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if email := r.PostFormValue("email"); email != "" {
		req.Email = &email
	}

	auth, err := h.service.Auth.Register(r.Context(), &req)
	if err != nil {
		h.log.Warn("Web registration failed", zap.Error(err), zap.String("username", req.Username))
		h.render(w, r, "register.html", nil, err.Error())
		return
	}

	h.setSessionCookie(w, auth.Token)
	http.Redirect(w, r, "/", http.StatusFound)
}
