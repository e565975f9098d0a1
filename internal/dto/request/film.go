package request

type CreateFilmRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
	DateStart   string `json:"date_start" validate:"required,datetime=2006-01-02"`
	DateFinish  string `json:"date_finish" validate:"required,datetime=2006-01-02"`
}

type UpdateFilmRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
	DateStart   string `json:"date_start" validate:"required,datetime=2006-01-02"`
	DateFinish  string `json:"date_finish" validate:"required,datetime=2006-01-02"`
}
