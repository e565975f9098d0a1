package request

// CreateSessionRequest is the template session: the time window, price, hall
// and film it carries are expanded into one session per calendar day of the
// film's run. Date is optional and only participates in the duplicate guard.
type CreateSessionRequest struct {
	Date      string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TimeStart string `json:"time_start" validate:"required,datetime=15:04"`
	TimeEnd   string `json:"time_end" validate:"required,datetime=15:04"`
	Price     int    `json:"price" validate:"required,gt=0"`
	HallID    string `json:"hall" validate:"required,uuid"`
	FilmID    string `json:"film" validate:"required,uuid"`
}

type UpdateSessionRequest struct {
	TimeStart string `json:"time_start" validate:"required,datetime=15:04"`
	TimeEnd   string `json:"time_end" validate:"required,datetime=15:04"`
	Price     int    `json:"price" validate:"required,gt=0"`
	HallID    string `json:"hall" validate:"required,uuid"`
	FilmID    string `json:"film" validate:"required,uuid"`
}

// ListSessionsRequest selects the reference calendar day and sort key for
// film/session listings.
type ListSessionsRequest struct {
	Day    string `json:"day" validate:"omitempty,oneof=today tomorrow"`
	SortBy string `json:"sort_by" validate:"omitempty,oneof=default price time"`
}
