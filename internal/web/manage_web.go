package web

import (
	"net/http"

	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateHallPage handles GET /create_hall (admin)
func (h *Handler) CreateHallPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "create_hall.html", nil, "")
}

// CreateHall handles POST /create_hall (admin)
func (h *Handler) CreateHall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.CreateHallRequest{
		Name: r.PostFormValue("name"),
		Size: utils.ParseInt(r.PostFormValue("size"), 0),
	}

	if _, err := h.service.Hall.Create(r.Context(), &req); err != nil {
		h.log.Warn("Web create hall failed", zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

type updateHallData struct {
	Hall *response.HallResponse
}

// UpdateHallPage handles GET /update_hall/{id} (admin)
func (h *Handler) UpdateHallPage(w http.ResponseWriter, r *http.Request) {
	hall, err := h.service.Hall.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, r, "update_hall.html", updateHallData{Hall: hall}, "")
}

// UpdateHall handles POST /update_hall/{id} (admin)
func (h *Handler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.UpdateHallRequest{
		Name: r.PostFormValue("name"),
		Size: utils.ParseInt(r.PostFormValue("size"), 0),
	}

	if _, err := h.service.Hall.Update(r.Context(), hallID, &req); err != nil {
		h.log.Warn("Web update hall failed", zap.Error(err), zap.String("hall_id", hallID))
		hall, pageErr := h.service.Hall.GetByID(r.Context(), hallID)
		if pageErr != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.render(w, r, "update_hall.html", updateHallData{Hall: hall}, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// CreateFilmPage handles GET /create_film (admin)
func (h *Handler) CreateFilmPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "create_film.html", nil, "")
}

// CreateFilm handles POST /create_film (admin)
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.CreateFilmRequest{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		DateStart:   r.PostFormValue("date_start"),
		DateFinish:  r.PostFormValue("date_finish"),
	}

	if _, err := h.service.Film.Create(r.Context(), &req); err != nil {
		h.log.Warn("Web create film failed", zap.Error(err))
		h.render(w, r, "create_film.html", nil, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

type sessionFormData struct {
	Session *response.SessionResponse
	Halls   []response.HallResponse
	Films   []response.FilmResponse
}

func (h *Handler) sessionFormData(r *http.Request, sessionID string) (sessionFormData, error) {
	var data sessionFormData

	halls, err := h.service.Hall.List(r.Context())
	if err != nil {
		return data, err
	}
	films, err := h.service.Film.List(r.Context())
	if err != nil {
		return data, err
	}

	data.Halls = halls
	data.Films = films

	if sessionID != "" {
		session, err := h.service.Session.GetByID(r.Context(), sessionID)
		if err != nil {
			return data, err
		}
		data.Session = session
	}

	return data, nil
}

// CreateSessionPage handles GET /create_session (admin)
func (h *Handler) CreateSessionPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.sessionFormData(r, "")
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, r, "create_session.html", data, "")
}

// CreateSession handles POST /create_session (admin)
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.CreateSessionRequest{
		Date:      r.PostFormValue("date"),
		TimeStart: r.PostFormValue("time_start"),
		TimeEnd:   r.PostFormValue("time_end"),
		Price:     utils.ParseInt(r.PostFormValue("price"), 0),
		HallID:    r.PostFormValue("hall"),
		FilmID:    r.PostFormValue("film"),
	}

	if _, err := h.service.Session.Create(r.Context(), &req); err != nil {
		h.log.Warn("Web create session failed", zap.Error(err))
		data, pageErr := h.sessionFormData(r, "")
		if pageErr != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.render(w, r, "create_session.html", data, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// UpdateSessionPage handles GET /update_session/{id} (admin)
func (h *Handler) UpdateSessionPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.sessionFormData(r, chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, r, "update_session.html", data, "")
}

// UpdateSession handles POST /update_session/{id} (admin)
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	req := request.UpdateSessionRequest{
		TimeStart: r.PostFormValue("time_start"),
		TimeEnd:   r.PostFormValue("time_end"),
		Price:     utils.ParseInt(r.PostFormValue("price"), 0),
		HallID:    r.PostFormValue("hall"),
		FilmID:    r.PostFormValue("film"),
	}

	if _, err := h.service.Session.Update(r.Context(), sessionID, &req); err != nil {
		h.log.Warn("Web update session failed", zap.Error(err), zap.String("session_id", sessionID))
		data, pageErr := h.sessionFormData(r, sessionID)
		if pageErr != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.render(w, r, "update_session.html", data, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
