package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FilmService interface {
	Create(ctx context.Context, req *request.CreateFilmRequest) (*response.FilmResponse, error)
	GetByID(ctx context.Context, filmID string) (*response.FilmResponse, error)
	List(ctx context.Context) ([]response.FilmResponse, error)
	// ListByDay returns films screening today or tomorrow, ordered by the
	// requested session attribute.
	ListByDay(ctx context.Context, day, sortBy string) ([]response.FilmResponse, error)
	Update(ctx context.Context, filmID string, req *request.UpdateFilmRequest) (*response.FilmResponse, error)
	Delete(ctx context.Context, filmID string) error
}

type filmService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFilmService(repo *repository.Repository, log *zap.Logger) FilmService {
	return &filmService{
		repo: repo,
		log:  log.With(zap.String("service", "film")),
	}
}

func (s *filmService) Create(ctx context.Context, req *request.CreateFilmRequest) (*response.FilmResponse, error) {
	// 1. Validate request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create film validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	dateStart, err := utils.ParseDate(req.DateStart)
	if err != nil {
		return nil, fmt.Errorf("invalid date_start %s: %w", req.DateStart, err)
	}
	dateFinish, err := utils.ParseDate(req.DateFinish)
	if err != nil {
		return nil, fmt.Errorf("invalid date_finish %s: %w", req.DateFinish, err)
	}

	// 2. The run must span at least one day in order
	if dateFinish.Before(dateStart) {
		return nil, entity.ErrDateOrder
	}

	// 3. Persist
	now := time.Now()
	film := &entity.Film{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		DateStart:   dateStart,
		DateFinish:  dateFinish,
	}

	if err := s.repo.Film.Create(ctx, film); err != nil {
		s.log.Error("Failed to create film", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create film: %w", err)
	}

	s.log.Info("Film created",
		zap.String("film_id", film.ID.String()),
		zap.String("name", film.Name),
	)

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) GetByID(ctx context.Context, filmID string) (*response.FilmResponse, error) {
	id, err := uuid.Parse(filmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, id)
	if err != nil || film == nil {
		return nil, fmt.Errorf("film %s not found", filmID)
	}

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) List(ctx context.Context) ([]response.FilmResponse, error) {
	films, err := s.repo.Film.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list films", zap.Error(err))
		return nil, fmt.Errorf("list films: %w", err)
	}

	return response.FilmsToResponse(films), nil
}

func (s *filmService) ListByDay(ctx context.Context, day, sortBy string) ([]response.FilmResponse, error) {
	date := utils.Today()
	if day == "tomorrow" {
		date = date.AddDate(0, 0, 1)
	}

	sort := repository.FilmSortDefault
	switch sortBy {
	case "price":
		sort = repository.FilmSortPrice
	case "time":
		sort = repository.FilmSortTime
	}

	films, err := s.repo.Film.FindBySessionDate(ctx, date, sort)
	if err != nil {
		s.log.Error("Failed to list films by day",
			zap.Error(err),
			zap.String("day", day),
			zap.String("sort_by", sortBy),
		)
		return nil, fmt.Errorf("list films for %s: %w", day, err)
	}

	return response.FilmsToResponse(films), nil
}

func (s *filmService) Update(ctx context.Context, filmID string, req *request.UpdateFilmRequest) (*response.FilmResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update film validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(filmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find film %s: %w", filmID, err)
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID)
	}

	dateStart, err := utils.ParseDate(req.DateStart)
	if err != nil {
		return nil, fmt.Errorf("invalid date_start %s: %w", req.DateStart, err)
	}
	dateFinish, err := utils.ParseDate(req.DateFinish)
	if err != nil {
		return nil, fmt.Errorf("invalid date_finish %s: %w", req.DateFinish, err)
	}

	if dateFinish.Before(dateStart) {
		return nil, entity.ErrDateOrder
	}

	film.Name = req.Name
	film.Description = req.Description
	film.DateStart = dateStart
	film.DateFinish = dateFinish
	film.UpdatedAt = time.Now()

	if err := s.repo.Film.Update(ctx, film); err != nil {
		s.log.Error("Failed to update film", zap.Error(err), zap.String("film_id", filmID))
		return nil, fmt.Errorf("update film %s: %w", filmID, err)
	}

	s.log.Info("Film updated", zap.String("film_id", filmID))

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) Delete(ctx context.Context, filmID string) error {
	id, err := uuid.Parse(filmID)
	if err != nil {
		return fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	if err := s.repo.Film.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete film", zap.Error(err), zap.String("film_id", filmID))
		return fmt.Errorf("delete film %s: %w", filmID, err)
	}

	s.log.Info("Film deleted", zap.String("film_id", filmID))
	return nil
}
