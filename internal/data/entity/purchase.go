package entity

import (
	"github.com/google/uuid"
)

// Purchase is immutable once created: there is no cancellation or refund path.
type Purchase struct {
	BaseSimple
	Amount    int       `db:"amount"`
	SessionID uuid.UUID `db:"session_id"`
	BuyerID   uuid.UUID `db:"buyer_id"`
}
