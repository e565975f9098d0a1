package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	FindAll(ctx context.Context) ([]*entity.Purchase, error)
	FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Purchase, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Purchase, error)
	ExistsBySessionID(ctx context.Context, sessionID uuid.UUID) (bool, error)
	ExistsByHallID(ctx context.Context, hallID uuid.UUID) (bool, error)
	Settle(ctx context.Context, sessionID, buyerID uuid.UUID, amount int) (*entity.Purchase, error)
}

type purchaseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPurchaseRepository(db database.PgxIface, log *zap.Logger) PurchaseRepository {
	return &purchaseRepository{
		db:  db,
		log: log.With(zap.String("repository", "purchase")),
	}
}

// Settle runs the whole seat-decrement + spend-credit + purchase-insert unit
// in one serializable transaction. The session row is locked first, so the
// availability check always runs against the current committed value and two
// concurrent settlements can never jointly oversell the hall.
func (r *purchaseRepository) Settle(ctx context.Context, sessionID, buyerID uuid.UUID, amount int) (*entity.Purchase, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		r.log.Error("Failed to begin settlement transaction", zap.Error(err))
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback(ctx)

	var price, restOfSeats int
	err = tx.QueryRow(ctx,
		`SELECT price, rest_of_seats FROM sessions WHERE id = $1 FOR UPDATE`,
		sessionID,
	).Scan(&price, &restOfSeats)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", sessionID.String())
	}
	if err != nil {
		r.log.Error("Failed to lock session for settlement",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("lock session %s: %w", sessionID.String(), err)
	}

	if amount > restOfSeats {
		return nil, entity.ErrInsufficientSeats
	}

	total := int64(price) * int64(amount)

	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET rest_of_seats = rest_of_seats - $2, updated_at = NOW() WHERE id = $1`,
		sessionID, amount,
	); err != nil {
		r.log.Error("Failed to decrement seats",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("decrement seats for session %s: %w", sessionID.String(), err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET total_spent = total_spent + $2, updated_at = NOW() WHERE id = $1`,
		buyerID, total,
	)
	if err != nil {
		r.log.Error("Failed to credit buyer spend",
			zap.Error(err),
			zap.String("buyer_id", buyerID.String()),
		)
		return nil, fmt.Errorf("credit buyer %s: %w", buyerID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("buyer %s not found", buyerID.String())
	}

	purchase := &entity.Purchase{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Amount:    amount,
		SessionID: sessionID,
		BuyerID:   buyerID,
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO purchases (id, amount, session_id, buyer_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		purchase.ID, purchase.Amount, purchase.SessionID, purchase.BuyerID, purchase.CreatedAt,
	); err != nil {
		r.log.Error("Failed to insert purchase",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
			zap.String("buyer_id", buyerID.String()),
		)
		return nil, fmt.Errorf("insert purchase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit settlement",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	return purchase, nil
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	query := `
		SELECT id, amount, session_id, buyer_id, created_at
		FROM purchases
		WHERE id = $1
	`

	var purchase entity.Purchase
	err := r.db.QueryRow(ctx, query, id).Scan(
		&purchase.ID,
		&purchase.Amount,
		&purchase.SessionID,
		&purchase.BuyerID,
		&purchase.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find purchase by ID",
			zap.Error(err),
			zap.String("purchase_id", id.String()),
		)
		return nil, fmt.Errorf("find purchase by ID %s: %w", id.String(), err)
	}

	return &purchase, nil
}

func (r *purchaseRepository) FindAll(ctx context.Context) ([]*entity.Purchase, error) {
	query := `
		SELECT id, amount, session_id, buyer_id, created_at
		FROM purchases
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find purchases", zap.Error(err))
		return nil, fmt.Errorf("find purchases: %w", err)
	}
	defer rows.Close()

	return scanPurchases(rows, r.log)
}

func (r *purchaseRepository) FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Purchase, error) {
	query := `
		SELECT id, amount, session_id, buyer_id, created_at
		FROM purchases
		WHERE buyer_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, buyerID)
	if err != nil {
		r.log.Error("Failed to find purchases by buyer ID",
			zap.Error(err),
			zap.String("buyer_id", buyerID.String()),
		)
		return nil, fmt.Errorf("find purchases by buyer ID %s: %w", buyerID.String(), err)
	}
	defer rows.Close()

	return scanPurchases(rows, r.log)
}

func (r *purchaseRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Purchase, error) {
	query := `
		SELECT id, amount, session_id, buyer_id, created_at
		FROM purchases
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find purchases by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find purchases by session ID %s: %w", sessionID.String(), err)
	}
	defer rows.Close()

	return scanPurchases(rows, r.log)
}

// ExistsBySessionID backs the mutation guard: a session with at least one
// purchase is closed to structural edits.
func (r *purchaseRepository) ExistsBySessionID(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM purchases WHERE session_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&exists); err != nil {
		r.log.Error("Failed to check purchases by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return false, fmt.Errorf("check purchases for session %s: %w", sessionID.String(), err)
	}

	return exists, nil
}

func (r *purchaseRepository) ExistsByHallID(ctx context.Context, hallID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM purchases p
			JOIN sessions s ON s.id = p.session_id
			WHERE s.hall_id = $1
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, hallID).Scan(&exists); err != nil {
		r.log.Error("Failed to check purchases by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return false, fmt.Errorf("check purchases for hall %s: %w", hallID.String(), err)
	}

	return exists, nil
}

func scanPurchases(rows pgx.Rows, log *zap.Logger) ([]*entity.Purchase, error) {
	var purchases []*entity.Purchase
	for rows.Next() {
		var purchase entity.Purchase
		err := rows.Scan(
			&purchase.ID,
			&purchase.Amount,
			&purchase.SessionID,
			&purchase.BuyerID,
			&purchase.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan purchase row", zap.Error(err))
			return nil, fmt.Errorf("scan purchase row: %w", err)
		}
		purchases = append(purchases, &purchase)
	}

	return purchases, nil
}
