package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one scheduled screening of a film in a hall on a specific date.
// Not to be confused with AuthSession, which carries an HTTP auth token.
type Session struct {
	Base
	Date        time.Time `db:"date"`
	TimeStart   time.Time `db:"time_start"`
	TimeEnd     time.Time `db:"time_end"`
	Price       int       `db:"price"`
	RestOfSeats int       `db:"rest_of_seats"`
	HallID      uuid.UUID `db:"hall_id"`
	FilmID      uuid.UUID `db:"film_id"`
}

// Overlaps reports whether the session's [TimeStart, TimeEnd) window
// intersects the given half-open window. Touching endpoints do not overlap.
func (s *Session) Overlaps(timeStart, timeEnd time.Time) bool {
	return s.TimeStart.Before(timeEnd) && s.TimeEnd.After(timeStart)
}
