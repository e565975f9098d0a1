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

type HallService interface {
	Create(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)
	GetByID(ctx context.Context, hallID string) (*response.HallResponse, error)
	List(ctx context.Context) ([]response.HallResponse, error)
	Update(ctx context.Context, hallID string, req *request.UpdateHallRequest) (*response.HallResponse, error)
	Delete(ctx context.Context, hallID string) error
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) Create(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
		Size: req.Size,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		s.log.Error("Failed to create hall", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("size", hall.Size),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) GetByID(ctx context.Context, hallID string) (*response.HallResponse, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", hallID, err)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil || hall == nil {
		return nil, fmt.Errorf("hall %s not found", hallID)
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) List(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list halls", zap.Error(err))
		return nil, fmt.Errorf("list halls: %w", err)
	}

	responses := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		responses[i] = response.HallToResponse(hall)
	}
	return responses, nil
}

func (s *hallService) Update(ctx context.Context, hallID string, req *request.UpdateHallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", hallID, err)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find hall %s: %w", hallID, err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s not found", hallID)
	}

	// A hall is frozen once any of its sessions has sold tickets: resizing
	// it would break the rest_of_seats ≤ size invariant.
	locked, err := s.repo.Purchase.ExistsByHallID(ctx, id)
	if err != nil {
		s.log.Error("Failed to check purchases for hall", zap.Error(err), zap.String("hall_id", hallID))
		return nil, fmt.Errorf("check purchases for hall %s: %w", hallID, err)
	}
	if locked {
		return nil, entity.ErrHallLocked
	}

	hall.Name = req.Name
	hall.Size = req.Size
	hall.UpdatedAt = time.Now()

	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		s.log.Error("Failed to update hall", zap.Error(err), zap.String("hall_id", hallID))
		return nil, fmt.Errorf("update hall %s: %w", hallID, err)
	}

	s.log.Info("Hall updated", zap.String("hall_id", hallID))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) Delete(ctx context.Context, hallID string) error {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return fmt.Errorf("invalid hall ID format %s: %w", hallID, err)
	}

	if err := s.repo.Hall.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete hall", zap.Error(err), zap.String("hall_id", hallID))
		return fmt.Errorf("delete hall %s: %w", hallID, err)
	}

	s.log.Info("Hall deleted", zap.String("hall_id", hallID))
	return nil
}
