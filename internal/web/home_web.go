package web

import (
	"net/http"

	"cinema-tickets/internal/dto/response"

	"go.uber.org/zap"
)

type homeData struct {
	Day      string
	SortBy   string
	Films    []response.FilmResponse
	Sessions []response.SessionResponse
}

// Home handles GET /. It lists the films screening on the selected day with
// their sessions, sorted by the selected session attribute.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	day := query.Get("day")
	if day != "tomorrow" {
		day = "today"
	}
	sortBy := query.Get("sort_by")

	films, err := h.service.Film.ListByDay(r.Context(), day, sortBy)
	if err != nil {
		h.log.Error("Failed to load films for front page", zap.Error(err))
		h.render(w, r, "index.html", homeData{Day: day, SortBy: sortBy}, "Could not load the program.")
		return
	}

	sessions, err := h.service.Session.ListByDay(r.Context(), day)
	if err != nil {
		h.log.Error("Failed to load sessions for front page", zap.Error(err))
		h.render(w, r, "index.html", homeData{Day: day, SortBy: sortBy, Films: films}, "Could not load the program.")
		return
	}

	h.render(w, r, "index.html", homeData{
		Day:      day,
		SortBy:   sortBy,
		Films:    films,
		Sessions: sessions,
	}, "")
}
