package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *repository.Repository, username string, role entity.UserRole) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     username,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user
}

func seedSession(t *testing.T, svc *Service, repo *repository.Repository, hallSize, price int) string {
	t.Helper()
	hall := seedHall(t, repo, "Main", hallSize)
	film := seedFilm(t, repo, "Solaris", day("2026-09-01"), day("2026-09-01"))

	created, err := svc.Session.Create(context.Background(), &request.CreateSessionRequest{
		TimeStart: "10:00",
		TimeEnd:   "12:00",
		Price:     price,
		HallID:    hall.ID.String(),
		FilmID:    film.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0].ID
}

func TestPurchaseRejectsNonPositiveAmount(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	buyer := seedUser(t, repo, "alice", entity.RoleCustomer)
	sessionID := seedSession(t, svc, repo, 100, 20)

	for _, amount := range []int{0, -3} {
		_, err := svc.Purchase.Create(context.Background(), sessionID, buyer.ID, &request.CreatePurchaseRequest{
			Amount: amount,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidAmount)
	}

	// Nothing moved.
	session, err := svc.Session.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 100, session.RestOfSeats)

	purchases, err := svc.Purchase.ListByBuyer(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestPurchaseRejectsOversell(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	buyer := seedUser(t, repo, "alice", entity.RoleCustomer)
	sessionID := seedSession(t, svc, repo, 10, 20)

	_, err := svc.Purchase.Create(context.Background(), sessionID, buyer.ID, &request.CreatePurchaseRequest{
		Amount: 11,
	})
	assert.ErrorIs(t, err, entity.ErrInsufficientSeats)

	session, err := svc.Session.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 10, session.RestOfSeats)

	stored, err := repo.User.FindByID(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.TotalSpent)
}

func TestPurchaseSettlement(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	buyer := seedUser(t, repo, "alice", entity.RoleCustomer)
	sessionID := seedSession(t, svc, repo, 100, 20)

	purchase, err := svc.Purchase.Create(context.Background(), sessionID, buyer.ID, &request.CreatePurchaseRequest{
		Amount: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, purchase.Amount)
	assert.Equal(t, sessionID, purchase.SessionID)
	assert.Equal(t, buyer.ID.String(), purchase.BuyerID)

	session, err := svc.Session.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 95, session.RestOfSeats)

	stored, err := repo.User.FindByID(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.TotalSpent)

	mine, err := svc.Purchase.ListByBuyer(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, purchase.ID, mine[0].ID)
}

func TestPurchaseExactlyDrainsSeats(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	buyer := seedUser(t, repo, "alice", entity.RoleCustomer)
	sessionID := seedSession(t, svc, repo, 10, 20)

	_, err := svc.Purchase.Create(context.Background(), sessionID, buyer.ID, &request.CreatePurchaseRequest{
		Amount: 10,
	})
	require.NoError(t, err)

	session, err := svc.Session.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Zero(t, session.RestOfSeats)

	// The next ticket has nowhere to sit.
	_, err = svc.Purchase.Create(context.Background(), sessionID, buyer.ID, &request.CreatePurchaseRequest{
		Amount: 1,
	})
	assert.ErrorIs(t, err, entity.ErrInsufficientSeats)
}

func TestPurchaseConcurrentSettlementNeverOversells(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	const seats = 10
	const buyers = 25

	sessionID := seedSession(t, svc, repo, seats, 20)

	var wg sync.WaitGroup
	errs := make([]error, buyers)

	for i := 0; i < buyers; i++ {
		buyer := seedUser(t, repo, "buyer", entity.RoleCustomer)
		wg.Add(1)
		go func(i int, buyerID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = svc.Purchase.Create(context.Background(), sessionID, buyerID, &request.CreatePurchaseRequest{
				Amount: 1,
			})
		}(i, buyer.ID)
	}
	wg.Wait()

	var sold, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			sold++
		case assert.ErrorIs(t, err, entity.ErrInsufficientSeats):
			rejected++
		}
	}

	assert.Equal(t, seats, sold)
	assert.Equal(t, buyers-seats, rejected)

	session, err := svc.Session.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Zero(t, session.RestOfSeats)
}

func TestPurchaseListBySessionScoping(t *testing.T) {
	repo := newTestRepository()
	svc := newTestService(repo)

	alice := seedUser(t, repo, "alice", entity.RoleCustomer)
	bob := seedUser(t, repo, "bob", entity.RoleCustomer)
	sessionID := seedSession(t, svc, repo, 100, 20)

	_, err := svc.Purchase.Create(context.Background(), sessionID, alice.ID, &request.CreatePurchaseRequest{Amount: 2})
	require.NoError(t, err)
	_, err = svc.Purchase.Create(context.Background(), sessionID, bob.ID, &request.CreatePurchaseRequest{Amount: 3})
	require.NoError(t, err)

	// A customer only sees their own tickets.
	own, err := svc.Purchase.ListBySession(context.Background(), sessionID, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID.String(), own[0].BuyerID)

	// An admin sees everything.
	all, err := svc.Purchase.ListBySession(context.Background(), sessionID, alice.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
