package response

import (
	"cinema-tickets/internal/data/entity"
)

type HallResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:   hall.ID.String(),
		Name: hall.Name,
		Size: hall.Size,
	}
}
