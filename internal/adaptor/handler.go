package adaptor

import (
	"cinema-tickets/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Hall     *HallHandler
	Film     *FilmHandler
	Session  *SessionHandler
	Purchase *PurchaseHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Hall:     NewHallHandler(service.Hall, log),
		Film:     NewFilmHandler(service.Film, log),
		Session:  NewSessionHandler(service.Session, log),
		Purchase: NewPurchaseHandler(service.Purchase, log),
	}
}
