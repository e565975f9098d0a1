package response

import (
	"cinema-tickets/internal/data/entity"
)

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      *string `json:"email,omitempty"`
	Role       string  `json:"role"`
	TotalSpent int64   `json:"total_spent"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Username:   user.Username,
		Email:      user.Email,
		Role:       string(user.Role),
		TotalSpent: user.TotalSpent,
	}
}
