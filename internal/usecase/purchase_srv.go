package usecase

import (
	"context"
	"errors"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PurchaseService interface {
	// Create settles a ticket purchase: seats debited, buyer spend credited
	// and the purchase recorded, all or nothing.
	Create(ctx context.Context, sessionID string, buyerID uuid.UUID, req *request.CreatePurchaseRequest) (*response.PurchaseResponse, error)
	GetByID(ctx context.Context, purchaseID string) (*response.PurchaseResponse, error)
	ListAll(ctx context.Context) ([]response.PurchaseResponse, error)
	ListBySession(ctx context.Context, sessionID string, requesterID uuid.UUID, isAdmin bool) ([]response.PurchaseResponse, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]response.PurchaseResponse, error)
}

type purchaseService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPurchaseService(repo *repository.Repository, log *zap.Logger) PurchaseService {
	return &purchaseService{
		repo: repo,
		log:  log.With(zap.String("service", "purchase")),
	}
}

func (s *purchaseService) Create(ctx context.Context, sessionID string, buyerID uuid.UUID, req *request.CreatePurchaseRequest) (*response.PurchaseResponse, error) {
	// 1. Validate request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create purchase validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Amount <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	// 2. Fast availability check before the transaction. The authoritative
	// check runs again inside Settle against the locked row.
	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find session %s: %w", sessionID, err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	if req.Amount > session.RestOfSeats {
		return nil, entity.ErrInsufficientSeats
	}

	// 3. Settle atomically
	purchase, err := s.repo.Purchase.Settle(ctx, id, buyerID, req.Amount)
	if err != nil {
		if errors.Is(err, entity.ErrInsufficientSeats) {
			return nil, err
		}
		s.log.Error("Failed to settle purchase",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("buyer_id", buyerID.String()),
		)
		return nil, fmt.Errorf("settle purchase: %w", err)
	}

	s.log.Info("Purchase settled",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("session_id", sessionID),
		zap.String("buyer_id", buyerID.String()),
		zap.Int("amount", req.Amount),
		zap.Int("price", session.Price),
	)

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) GetByID(ctx context.Context, purchaseID string) (*response.PurchaseResponse, error) {
	id, err := uuid.Parse(purchaseID)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase ID format %s: %w", purchaseID, err)
	}

	purchase, err := s.repo.Purchase.FindByID(ctx, id)
	if err != nil || purchase == nil {
		return nil, fmt.Errorf("purchase %s not found", purchaseID)
	}

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) ListAll(ctx context.Context) ([]response.PurchaseResponse, error) {
	purchases, err := s.repo.Purchase.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list purchases", zap.Error(err))
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	return response.PurchasesToResponse(purchases), nil
}

// ListBySession returns the purchases of one session: all of them for an
// admin, only the requester's own otherwise.
func (s *purchaseService) ListBySession(ctx context.Context, sessionID string, requesterID uuid.UUID, isAdmin bool) ([]response.PurchaseResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	purchases, err := s.repo.Purchase.FindBySessionID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list purchases by session", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("list purchases for session %s: %w", sessionID, err)
	}

	if !isAdmin {
		var own []*entity.Purchase
		for _, p := range purchases {
			if p.BuyerID == requesterID {
				own = append(own, p)
			}
		}
		purchases = own
	}

	return response.PurchasesToResponse(purchases), nil
}

func (s *purchaseService) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]response.PurchaseResponse, error) {
	purchases, err := s.repo.Purchase.FindByBuyerID(ctx, buyerID)
	if err != nil {
		s.log.Error("Failed to list purchases by buyer", zap.Error(err), zap.String("buyer_id", buyerID.String()))
		return nil, fmt.Errorf("list purchases for buyer %s: %w", buyerID.String(), err)
	}

	return response.PurchasesToResponse(purchases), nil
}
