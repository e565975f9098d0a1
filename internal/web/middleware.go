package web

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const sessionCookieName = "session_token"

type webContextKey string

const viewerKey webContextKey = "viewer"

func viewerFromContext(r *http.Request) viewer {
	if v, ok := r.Context().Value(viewerKey).(viewer); ok {
		return v
	}
	return viewer{}
}

func tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// SessionCookie resolves the auth token cookie into a viewer and enforces
// the idle-logout policy: a non-admin who has been inactive longer than the
// configured timeout gets the token revoked and lands on the login page.
// Admins are exempt. Requests without a valid cookie pass through anonymous.
func (h *Handler) SessionCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := h.repo.AuthSession.FindValidSession(r.Context(), token)
		if err != nil {
			h.log.Error("Failed to validate session cookie", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if session == nil {
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.repo.User.FindByID(r.Context(), session.UserID)
		if err != nil || user == nil {
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		now := time.Now()
		idle := time.Duration(h.config.Auth.IdleTimeoutSeconds) * time.Second

		if !user.IsAdmin() && now.Sub(session.LastActivityAt) > idle {
			if err := h.repo.AuthSession.Revoke(r.Context(), token); err != nil {
				h.log.Warn("Failed to revoke idle session", zap.Error(err))
			}
			h.clearSessionCookie(w)
			h.log.Info("Idle session logged out",
				zap.String("user_id", user.ID.String()))
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		if err := h.repo.AuthSession.Touch(r.Context(), token, now); err != nil {
			h.log.Warn("Failed to touch session", zap.Error(err))
		}

		v := viewer{
			LoggedIn: true,
			UserID:   user.ID.String(),
			Username: user.Username,
			IsAdmin:  user.IsAdmin(),
		}

		ctx := context.WithValue(r.Context(), viewerKey, v)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects anonymous visitors to the login page.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !viewerFromContext(r).LoggedIn {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin sends non-admin visitors back to the front page.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := viewerFromContext(r)
		if !v.LoggedIn {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if !v.IsAdmin {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
