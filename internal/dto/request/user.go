package request

type UpdateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password string  `json:"password,omitempty" validate:"omitempty,min=6"`
}
