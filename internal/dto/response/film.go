package response

import (
	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/utils"
)

type FilmResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DateStart   string `json:"date_start"`
	DateFinish  string `json:"date_finish"`
}

func FilmToResponse(film *entity.Film) FilmResponse {
	return FilmResponse{
		ID:          film.ID.String(),
		Name:        film.Name,
		Description: film.Description,
		DateStart:   film.DateStart.Format(utils.DateLayout),
		DateFinish:  film.DateFinish.Format(utils.DateLayout),
	}
}

func FilmsToResponse(films []*entity.Film) []FilmResponse {
	responses := make([]FilmResponse, len(films))
	for i, film := range films {
		responses[i] = FilmToResponse(film)
	}
	return responses
}
