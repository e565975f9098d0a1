package response

import (
	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/utils"
)

type SessionResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	TimeStart   string `json:"time_start"`
	TimeEnd     string `json:"time_end"`
	Price       int    `json:"price"`
	RestOfSeats int    `json:"rest_of_seats"`
	HallID      string `json:"hall"`
	FilmID      string `json:"film"`
}

func SessionToResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		ID:          session.ID.String(),
		Date:        session.Date.Format(utils.DateLayout),
		TimeStart:   session.TimeStart.Format(utils.TimeLayout),
		TimeEnd:     session.TimeEnd.Format(utils.TimeLayout),
		Price:       session.Price,
		RestOfSeats: session.RestOfSeats,
		HallID:      session.HallID.String(),
		FilmID:      session.FilmID.String(),
	}
}

func SessionsToResponse(sessions []*entity.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = SessionToResponse(session)
	}
	return responses
}
