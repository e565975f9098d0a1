package request

type CreateHallRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
	Size int    `json:"size" validate:"required,gt=0"`
}

type UpdateHallRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
	Size int    `json:"size" validate:"required,gt=0"`
}
