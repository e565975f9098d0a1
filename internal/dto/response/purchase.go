package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type PurchaseResponse struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	SessionID string    `json:"ticket"`
	BuyerID   string    `json:"buyer"`
	CreatedAt time.Time `json:"created_at"`
}

func PurchaseToResponse(purchase *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:        purchase.ID.String(),
		Amount:    purchase.Amount,
		SessionID: purchase.SessionID.String(),
		BuyerID:   purchase.BuyerID.String(),
		CreatedAt: purchase.CreatedAt,
	}
}

func PurchasesToResponse(purchases []*entity.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i, purchase := range purchases {
		responses[i] = PurchaseToResponse(purchase)
	}
	return responses
}
