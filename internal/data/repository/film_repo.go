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

// FilmSort orders a film listing by an attribute of the films' sessions on
// the selected day.
type FilmSort string

const (
	FilmSortDefault FilmSort = "default"
	FilmSortPrice   FilmSort = "price"
	FilmSortTime    FilmSort = "time"
)

type FilmRepository interface {
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	FindAll(ctx context.Context) ([]*entity.Film, error)
	FindBySessionDate(ctx context.Context, date time.Time, sortBy FilmSort) ([]*entity.Film, error)
	Update(ctx context.Context, film *entity.Film) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type filmRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (id, name, description, date_start, date_finish, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		film.ID,
		film.Name,
		film.Description,
		film.DateStart,
		film.DateFinish,
		film.CreatedAt,
		film.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("name", film.Name),
		)
		return fmt.Errorf("create film %s: %w", film.Name, err)
	}

	return nil
}

func (r *filmRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	query := `
		SELECT id, name, description, date_start, date_finish, created_at, updated_at
		FROM films
		WHERE id = $1
	`

	var film entity.Film
	err := r.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.DateStart,
		&film.DateFinish,
		&film.CreatedAt,
		&film.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return nil, fmt.Errorf("find film by ID %s: %w", id.String(), err)
	}

	return &film, nil
}

func (r *filmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	query := `
		SELECT id, name, description, date_start, date_finish, created_at, updated_at
		FROM films
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find films", zap.Error(err))
		return nil, fmt.Errorf("find films: %w", err)
	}
	defer rows.Close()

	return scanFilms(rows, r.log)
}

// FindBySessionDate returns distinct films that have at least one session on
// the given date. Price and time sorts order by the films' cheapest or
// earliest session that day.
func (r *filmRepository) FindBySessionDate(ctx context.Context, date time.Time, sortBy FilmSort) ([]*entity.Film, error) {
	orderBy := "MIN(s.created_at)"
	switch sortBy {
	case FilmSortPrice:
		orderBy = "MIN(s.price)"
	case FilmSortTime:
		orderBy = "MIN(s.time_start)"
	}

	query := fmt.Sprintf(`
		SELECT f.id, f.name, f.description, f.date_start, f.date_finish, f.created_at, f.updated_at
		FROM films f
		JOIN sessions s ON s.film_id = f.id
		WHERE s.date = $1
		GROUP BY f.id
		ORDER BY %s
	`, orderBy)

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find films by session date",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("sort_by", string(sortBy)),
		)
		return nil, fmt.Errorf("find films by session date %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanFilms(rows, r.log)
}

func (r *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE films
		SET name = $2, description = $3, date_start = $4, date_finish = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		film.ID,
		film.Name,
		film.Description,
		film.DateStart,
		film.DateFinish,
		film.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update film",
			zap.Error(err),
			zap.String("film_id", film.ID.String()),
		)
		return fmt.Errorf("update film %s: %w", film.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %s not found", film.ID.String())
	}

	return nil
}

func (r *filmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM films WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete film",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return fmt.Errorf("delete film %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %s not found", id.String())
	}

	return nil
}

func scanFilms(rows pgx.Rows, log *zap.Logger) ([]*entity.Film, error) {
	var films []*entity.Film
	for rows.Next() {
		var film entity.Film
		err := rows.Scan(
			&film.ID,
			&film.Name,
			&film.Description,
			&film.DateStart,
			&film.DateFinish,
			&film.CreatedAt,
			&film.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films = append(films, &film)
	}

	return films, nil
}
