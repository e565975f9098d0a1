package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHall(t *testing.T, repo *repository.Repository, name string, size int) *entity.Hall {
	t.Helper()
	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Size: size,
	}
	require.NoError(t, repo.Hall.Create(context.Background(), hall))
	return hall
}

func seedFilm(t *testing.T, repo *repository.Repository, name string, dateStart, dateFinish time.Time) *entity.Film {
	t.Helper()
	now := time.Now()
	film := &entity.Film{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:        name,
		Description: "test film",
		DateStart:   dateStart,
		DateFinish:  dateFinish,
	}
	require.NoError(t, repo.Film.Create(context.Background(), film))
	return film
}

func day(value string) time.Time {
	d, err := utils.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSessionCreateExpandsFilmRun(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 120)
	film := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-05"))

	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, created, 5)

	for i, resp := range created {
		assert.Equal(t, day("2026-09-01").AddDate(0, 0, i).Format(utils.DateLayout), resp.Date)
		assert.Equal(t, "10:00", resp.TimeStart)
		assert.Equal(t, "12:00", resp.TimeEnd)
		assert.Equal(t, 25, resp.Price)
		assert.Equal(t, 120, resp.RestOfSeats)
	}
}

func TestSessionCreateSingleDayRun(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Blue", 40)
	film := seedFilm(t, repo, "Stalker", day("2026-09-10"), day("2026-09-10"))

	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "18:00",
		TimeEnd:   "20:30",
		Price:     30,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestSessionCreateRejectsBadTimeWindow(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 50)
	film := seedFilm(t, repo, "Mirror", day("2026-09-01"), day("2026-09-03"))

	for _, window := range []struct {
		name, start, end string
	}{
		{"inverted", "12:00", "10:00"},
		{"zero length", "12:00", "12:00"},
	} {
		t.Run(window.name, func(t *testing.T) {
			_, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
				TimeStart: window.start,
				TimeEnd:   window.end,
				Price:     10,
				HallID:    hall.ID.String(),
				FilmID:    film.ID.String(),
			})
			assert.ErrorIs(t, err, entity.ErrTimeOrder)
		})
	}

	all, err := repo.Session.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "rejected template must not create sessions")
}

func TestSessionCreateDuplicateTemplate(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 80)
	film := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-03"))

	req := &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	}

	_, err := svc.Session.Create(context.Background(), req)
	require.NoError(t, err)

	// A second submit of the same template trips the guard before any insert.
	_, err = svc.Session.Create(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrDuplicateSession)

	// Same template with an explicit date matching one created day also trips.
	withDate := *req
	withDate.Date = "2026-09-02"
	_, err = svc.Session.Create(context.Background(), &withDate)
	assert.ErrorIs(t, err, entity.ErrDuplicateSession)

	all, err := repo.Session.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionCreateConflict(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 80)
	first := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-01"))
	second := seedFilm(t, repo, "Stalker", day("2026-10-20"), day("2026-10-20"))

	_, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    first.ID.String(),
	})
	require.NoError(t, err)

	// Overlapping window in the same hall conflicts even though the other
	// film runs on entirely different dates.
	_, err = svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "11:00",
		TimeEnd:   "13:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    second.ID.String(),
	})
	assert.ErrorIs(t, err, entity.ErrSessionConflict)

	// A touching window does not overlap: [10:00,12:00) then [12:00,14:00).
	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "12:00",
		TimeEnd:   "14:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    second.ID.String(),
	})
	require.NoError(t, err)
	assert.Len(t, created, 1)

	// A different hall is free to overlap.
	other := seedHall(t, repo, "Blue", 60)
	_, err = svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "11:00",
		TimeEnd:   "13:00",
		Price:     25,
		HallID:    other.ID.String(),
		FilmID:    second.ID.String(),
	})
	assert.NoError(t, err)
}

func TestSessionUpdateExcludesOwnRow(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 80)
	film := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-01"))

	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	// Re-saving the same window must not conflict with itself.
	updated, err := svc.Session.Update(context.Background(), created[0].ID, &request.UpdateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     35,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Price)
}

func TestSessionUpdateConflictsWithSibling(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 80)
	film := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-01"))

	morning, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)

	evening, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "18:00",
		TimeEnd:   "20:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)

	_, err = svc.Session.Update(context.Background(), evening[0].ID, &request.UpdateSessionRequest{
		TimeStart: "11:00",
		TimeEnd:   "13:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	assert.ErrorIs(t, err, entity.ErrSessionConflict)

	// The sibling is untouched.
	still, err := svc.Session.GetByID(context.Background(), morning[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", still.TimeStart)
}

func TestSessionUpdateLockedByPurchase(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 80)
	film := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-01"))

	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)

	sessionID, err := uuid.Parse(created[0].ID)
	require.NoError(t, err)

	buyer := uuid.New()
	_, err = repo.Purchase.Settle(context.Background(), sessionID, buyer, 2)
	require.NoError(t, err)

	_, err = svc.Session.Update(context.Background(), created[0].ID, &request.UpdateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     99,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	assert.ErrorIs(t, err, entity.ErrSessionLocked)

	// Price stays as sold.
	still, err := svc.Session.GetByID(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, still.Price)
}

func TestSessionListByDay(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	hall := seedHall(t, repo, "Red", 80)
	film := seedFilm(t, repo, "Solaris", utils.Today(), utils.Today().AddDate(0, 0, 1))

	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     25,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	today, err := svc.Session.ListByDay(context.Background(), "today")
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, utils.Today().Format(utils.DateLayout), today[0].Date)

	tomorrow, err := svc.Session.ListByDay(context.Background(), "tomorrow")
	require.NoError(t, err)
	require.Len(t, tomorrow, 1)
	assert.Equal(t, utils.Today().AddDate(0, 0, 1).Format(utils.DateLayout), tomorrow[0].Date)
}
