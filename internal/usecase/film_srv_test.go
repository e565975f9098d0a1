package usecase

import (
	"context"
	"testing"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmCreateRejectsInvertedRun(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	_, err := svc.Film.Create(context.Background(), &request.CreateFilmRequest{
		Name:        "Solaris",
		Description: "sci-fi",
		DateStart:   "2026-09-10",
		DateFinish:  "2026-09-01",
	})
	assert.ErrorIs(t, err, entity.ErrDateOrder)

	films, err := svc.Film.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestFilmListByDaySorting(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	today := utils.Today().Format(utils.DateLayout)

	cheapLate, err := svc.Film.Create(context.Background(), &request.CreateFilmRequest{
		Name:        "Cheap Late",
		Description: "d",
		DateStart:   today,
		DateFinish:  today,
	})
	require.NoError(t, err)

	priceyEarly, err := svc.Film.Create(context.Background(), &request.CreateFilmRequest{
		Name:        "Pricey Early",
		Description: "d",
		DateStart:   today,
		DateFinish:  today,
	})
	require.NoError(t, err)

	hallA := seedHall(t, repo, "A", 50)
	hallB := seedHall(t, repo, "B", 50)

	_, err = svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "20:00",
		TimeEnd:   "22:00",
		Price:     10,
		HallID:    hallA.ID.String(),
		FilmID:    cheapLate.ID,
	})
	require.NoError(t, err)

	_, err = svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     40,
		HallID:    hallB.ID.String(),
		FilmID:    priceyEarly.ID,
	})
	require.NoError(t, err)

	byPrice, err := svc.Film.ListByDay(context.Background(), "today", "price")
	require.NoError(t, err)
	require.Len(t, byPrice, 2)
	assert.Equal(t, "Cheap Late", byPrice[0].Name)

	byTime, err := svc.Film.ListByDay(context.Background(), "today", "time")
	require.NoError(t, err)
	require.Len(t, byTime, 2)
	assert.Equal(t, "Pricey Early", byTime[0].Name)

	// Tomorrow the program is empty.
	tomorrow, err := svc.Film.ListByDay(context.Background(), "tomorrow", "")
	require.NoError(t, err)
	assert.Empty(t, tomorrow)
}
