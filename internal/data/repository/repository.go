package repository

import (
	"cinema-tickets/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	AuthSession AuthSessionRepository
	Hall        HallRepository
	Film        FilmRepository
	Session     SessionRepository
	Purchase    PurchaseRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		AuthSession: NewAuthSessionRepository(db, log),
		Hall:        NewHallRepository(db, log),
		Film:        NewFilmRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Purchase:    NewPurchaseRepository(db, log),
	}
}
