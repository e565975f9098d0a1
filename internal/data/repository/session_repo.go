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

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context) ([]*entity.Session, error)
	FindByDate(ctx context.Context, date time.Time) ([]*entity.Session, error)
	FindByFilmID(ctx context.Context, filmID uuid.UUID) ([]*entity.Session, error)
	ExistsWithAttributes(ctx context.Context, date *time.Time, timeStart, timeEnd time.Time, price int, hallID, filmID uuid.UUID) (bool, error)
	HasConflict(ctx context.Context, hallID uuid.UUID, timeStart, timeEnd time.Time, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, date, time_start, time_end, price, rest_of_seats,
		                      hall_id, film_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.Date,
		session.TimeStart,
		session.TimeEnd,
		session.Price,
		session.RestOfSeats,
		session.HallID,
		session.FilmID,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("hall_id", session.HallID.String()),
			zap.String("film_id", session.FilmID.String()),
			zap.Time("date", session.Date),
		)
		return fmt.Errorf("create session for film %s hall %s: %w",
			session.FilmID.String(), session.HallID.String(), err)
	}

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, date, time_start, time_end, price, rest_of_seats,
		       hall_id, film_id, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Date,
		&session.TimeStart,
		&session.TimeEnd,
		&session.Price,
		&session.RestOfSeats,
		&session.HallID,
		&session.FilmID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("find session by ID %s: %w", id.String(), err)
	}

	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context) ([]*entity.Session, error) {
	query := `
		SELECT id, date, time_start, time_end, price, rest_of_seats,
		       hall_id, film_id, created_at, updated_at
		FROM sessions
		ORDER BY date, time_start
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find sessions", zap.Error(err))
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows, r.log)
}

func (r *sessionRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.Session, error) {
	query := `
		SELECT id, date, time_start, time_end, price, rest_of_seats,
		       hall_id, film_id, created_at, updated_at
		FROM sessions
		WHERE date = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find sessions by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find sessions by date %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanSessions(rows, r.log)
}

func (r *sessionRepository) FindByFilmID(ctx context.Context, filmID uuid.UUID) ([]*entity.Session, error) {
	query := `
		SELECT id, date, time_start, time_end, price, rest_of_seats,
		       hall_id, film_id, created_at, updated_at
		FROM sessions
		WHERE film_id = $1
		ORDER BY date, time_start
	`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find sessions by film ID",
			zap.Error(err),
			zap.String("film_id", filmID.String()),
		)
		return nil, fmt.Errorf("find sessions by film ID %s: %w", filmID.String(), err)
	}
	defer rows.Close()

	return scanSessions(rows, r.log)
}

// ExistsWithAttributes reports whether a session with the exact same
// (date, time_start, time_end, price, hall, film) combination already exists.
// A nil date matches any date, so resubmitting the same template without a
// date still trips the duplicate guard.
func (r *sessionRepository) ExistsWithAttributes(ctx context.Context, date *time.Time, timeStart, timeEnd time.Time, price int, hallID, filmID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE ($1::date IS NULL OR date = $1)
			  AND time_start = $2
			  AND time_end = $3
			  AND price = $4
			  AND hall_id = $5
			  AND film_id = $6
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query,
		date,
		timeStart,
		timeEnd,
		price,
		hallID,
		filmID,
	).Scan(&exists)

	if err != nil {
		r.log.Error("Failed to check duplicate session",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.String("film_id", filmID.String()),
		)
		return false, fmt.Errorf("check duplicate session: %w", err)
	}

	return exists, nil
}

// HasConflict reports whether any session in the hall occupies an overlapping
// half-open time window. The scan deliberately ignores the date column, which
// matches the long-standing validator behavior the callers depend on.
func (r *sessionRepository) HasConflict(ctx context.Context, hallID uuid.UUID, timeStart, timeEnd time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE hall_id = $1
			  AND time_start < $3
			  AND time_end > $2
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, hallID, timeStart, timeEnd, excludeID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check session conflict",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return false, fmt.Errorf("check session conflict in hall %s: %w", hallID.String(), err)
	}

	return exists, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	query := `
		UPDATE sessions
		SET date = $2, time_start = $3, time_end = $4, price = $5,
		    hall_id = $6, film_id = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		session.ID,
		session.Date,
		session.TimeStart,
		session.TimeEnd,
		session.Price,
		session.HallID,
		session.FilmID,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return fmt.Errorf("update session %s: %w", session.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", session.ID.String())
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("delete session %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id.String())
	}

	return nil
}

func scanSessions(rows pgx.Rows, log *zap.Logger) ([]*entity.Session, error) {
	var sessions []*entity.Session
	for rows.Next() {
		var session entity.Session
		err := rows.Scan(
			&session.ID,
			&session.Date,
			&session.TimeStart,
			&session.TimeEnd,
			&session.Price,
			&session.RestOfSeats,
			&session.HallID,
			&session.FilmID,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan session row", zap.Error(err))
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}
