package usecase

import (
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Hall     HallService
	Film     FilmService
	Session  SessionService
	Purchase PurchaseService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo, log),
		Hall:     NewHallService(repo, log),
		Film:     NewFilmService(repo, log),
		Session:  NewSessionService(repo, log),
		Purchase: NewPurchaseService(repo, log),
	}
}
