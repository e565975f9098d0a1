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

type SessionService interface {
	// Create expands the template into one session per calendar day of the
	// film's run and returns the created rows.
	Create(ctx context.Context, req *request.CreateSessionRequest) ([]response.SessionResponse, error)
	GetByID(ctx context.Context, sessionID string) (*response.SessionResponse, error)
	List(ctx context.Context) ([]response.SessionResponse, error)
	ListByDay(ctx context.Context, day string) ([]response.SessionResponse, error)
	ListByFilm(ctx context.Context, filmID string) ([]response.SessionResponse, error)
	Update(ctx context.Context, sessionID string, req *request.UpdateSessionRequest) (*response.SessionResponse, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		repo: repo,
		log:  log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) Create(ctx context.Context, req *request.CreateSessionRequest) ([]response.SessionResponse, error) {
	// 1. Validate request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", req.HallID, err)
	}
	filmID, err := uuid.Parse(req.FilmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", req.FilmID, err)
	}

	timeStart, err := utils.ParseClock(req.TimeStart)
	if err != nil {
		return nil, fmt.Errorf("invalid time_start %s: %w", req.TimeStart, err)
	}
	timeEnd, err := utils.ParseClock(req.TimeEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid time_end %s: %w", req.TimeEnd, err)
	}

	if !timeStart.Before(timeEnd) {
		return nil, entity.ErrTimeOrder
	}

	var templateDate *time.Time
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %s: %w", req.Date, err)
		}
		templateDate = &parsed
	}

	// 2. Resolve references
	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil || hall == nil {
		return nil, fmt.Errorf("hall %s not found", req.HallID)
	}

	film, err := s.repo.Film.FindByID(ctx, filmID)
	if err != nil || film == nil {
		return nil, fmt.Errorf("film %s not found", req.FilmID)
	}

	if film.DateFinish.Before(film.DateStart) {
		return nil, entity.ErrDateOrder
	}

	// 3. Duplicate template guard, before any insert
	exists, err := s.repo.Session.ExistsWithAttributes(ctx, templateDate, timeStart, timeEnd, req.Price, hallID, filmID)
	if err != nil {
		s.log.Error("Failed to check duplicate session", zap.Error(err))
		return nil, fmt.Errorf("check duplicate session: %w", err)
	}
	if exists {
		return nil, entity.ErrDuplicateSession
	}

	// 4. Overlap guard. The scan covers every session in the hall regardless
	// of date, preserving the validator behavior clients rely on.
	conflict, err := s.repo.Session.HasConflict(ctx, hallID, timeStart, timeEnd, nil)
	if err != nil {
		s.log.Error("Failed to check session conflict", zap.Error(err))
		return nil, fmt.Errorf("check session conflict: %w", err)
	}
	if conflict {
		return nil, entity.ErrSessionConflict
	}

	// 5. Expand the template: one session per calendar day, both endpoints
	// included, seats initialized to the hall size.
	now := time.Now()
	var created []*entity.Session
	for d := film.DateStart; !d.After(film.DateFinish); d = d.AddDate(0, 0, 1) {
		session := &entity.Session{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Date:        d,
			TimeStart:   timeStart,
			TimeEnd:     timeEnd,
			Price:       req.Price,
			RestOfSeats: hall.Size,
			HallID:      hallID,
			FilmID:      filmID,
		}

		if err := s.repo.Session.Create(ctx, session); err != nil {
			s.log.Error("Failed to create session",
				zap.Error(err),
				zap.Time("date", d),
				zap.String("hall_id", req.HallID),
				zap.String("film_id", req.FilmID),
			)
			return nil, fmt.Errorf("create session on %s: %w", d.Format(utils.DateLayout), err)
		}
		created = append(created, session)
	}

	s.log.Info("Sessions created",
		zap.Int("count", len(created)),
		zap.String("hall_id", req.HallID),
		zap.String("film_id", req.FilmID),
		zap.String("time_start", req.TimeStart),
		zap.String("time_end", req.TimeEnd),
	)

	return response.SessionsToResponse(created), nil
}

func (s *sessionService) GetByID(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil || session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	resp := response.SessionToResponse(session)
	return &resp, nil
}

func (s *sessionService) List(ctx context.Context) ([]response.SessionResponse, error) {
	sessions, err := s.repo.Session.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list sessions", zap.Error(err))
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return response.SessionsToResponse(sessions), nil
}

// ListByDay returns the sessions scheduled on the reference date:
// today, or tomorrow when day is "tomorrow".
func (s *sessionService) ListByDay(ctx context.Context, day string) ([]response.SessionResponse, error) {
	date := utils.Today()
	if day == "tomorrow" {
		date = date.AddDate(0, 0, 1)
	}

	sessions, err := s.repo.Session.FindByDate(ctx, date)
	if err != nil {
		s.log.Error("Failed to list sessions by day", zap.Error(err), zap.String("day", day))
		return nil, fmt.Errorf("list sessions for %s: %w", day, err)
	}

	return response.SessionsToResponse(sessions), nil
}

func (s *sessionService) ListByFilm(ctx context.Context, filmID string) ([]response.SessionResponse, error) {
	id, err := uuid.Parse(filmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, id)
	if err != nil || film == nil {
		return nil, fmt.Errorf("film %s not found", filmID)
	}

	sessions, err := s.repo.Session.FindByFilmID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list sessions by film", zap.Error(err), zap.String("film_id", filmID))
		return nil, fmt.Errorf("list sessions for film %s: %w", filmID, err)
	}

	return response.SessionsToResponse(sessions), nil
}

func (s *sessionService) Update(ctx context.Context, sessionID string, req *request.UpdateSessionRequest) (*response.SessionResponse, error) {
	// 1. Validate request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find session %s: %w", sessionID, err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	// 2. Mutation guard: structural edits are blocked wholesale once a
	// single purchase references the session.
	locked, err := s.repo.Purchase.ExistsBySessionID(ctx, id)
	if err != nil {
		s.log.Error("Failed to check purchases for session", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("check purchases for session %s: %w", sessionID, err)
	}
	if locked {
		return nil, entity.ErrSessionLocked
	}

	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", req.HallID, err)
	}
	filmID, err := uuid.Parse(req.FilmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", req.FilmID, err)
	}

	timeStart, err := utils.ParseClock(req.TimeStart)
	if err != nil {
		return nil, fmt.Errorf("invalid time_start %s: %w", req.TimeStart, err)
	}
	timeEnd, err := utils.ParseClock(req.TimeEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid time_end %s: %w", req.TimeEnd, err)
	}

	if !timeStart.Before(timeEnd) {
		return nil, entity.ErrTimeOrder
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil || hall == nil {
		return nil, fmt.Errorf("hall %s not found", req.HallID)
	}

	// 3. Overlap guard, excluding the session's own row
	conflict, err := s.repo.Session.HasConflict(ctx, hallID, timeStart, timeEnd, &id)
	if err != nil {
		s.log.Error("Failed to check session conflict", zap.Error(err))
		return nil, fmt.Errorf("check session conflict: %w", err)
	}
	if conflict {
		return nil, entity.ErrSessionConflict
	}

	// 4. Apply the update. rest_of_seats is deliberately untouched: only
	// settlement mutates it.
	session.TimeStart = timeStart
	session.TimeEnd = timeEnd
	session.Price = req.Price
	session.HallID = hallID
	session.FilmID = filmID
	session.UpdatedAt = time.Now()

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.log.Error("Failed to update session", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("update session %s: %w", sessionID, err)
	}

	s.log.Info("Session updated", zap.String("session_id", sessionID))

	resp := response.SessionToResponse(session)
	return &resp, nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete session", zap.Error(err), zap.String("session_id", sessionID))
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}

	s.log.Info("Session deleted", zap.String("session_id", sessionID))
	return nil
}
