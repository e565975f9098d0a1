package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests. They mirror the SQL
// semantics of the real repositories, including the date-agnostic conflict
// scan and the locked settlement.

func newTestRepository() *repository.Repository {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	sessions := &fakeSessionRepo{}
	films := &fakeFilmRepo{films: map[uuid.UUID]*entity.Film{}, sessions: sessions}
	purchases := &fakePurchaseRepo{sessions: sessions, users: users}

	return &repository.Repository{
		User:        users,
		AuthSession: &fakeAuthSessionRepo{sessions: map[string]*entity.AuthSession{}},
		Hall:        &fakeHallRepo{halls: map[uuid.UUID]*entity.Hall{}},
		Film:        films,
		Session:     sessions,
		Purchase:    purchases,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		Auth: utils.AuthConfig{
			TokenExpiryHours:   24,
			IdleTimeoutSeconds: 60,
		},
	}
}

func newTestService(repo *repository.Repository) *Service {
	return NewService(repo, testConfig(), zap.NewNop())
}

// ---------- users ----------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	// total_spent only moves through settlement
	cp := *user
	cp.TotalSpent = existing.TotalSpent
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	delete(r.users, id)
	return nil
}

// ---------- auth sessions ----------

type fakeAuthSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.AuthSession
}

func (r *fakeAuthSessionRepo) Create(_ context.Context, session *entity.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.Token.String()] = &cp
	return nil
}

func (r *fakeAuthSessionRepo) FindValidSession(_ context.Context, token string) (*entity.AuthSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeAuthSessionRepo) Touch(_ context.Context, token string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok && s.RevokedAt == nil {
		s.LastActivityAt = at
	}
	return nil
}

func (r *fakeAuthSessionRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("auth session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *fakeAuthSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeAuthSessionRepo) CleanExpiredSessions(_ context.Context) error {
	return nil
}

// ---------- halls ----------

type fakeHallRepo struct {
	mu    sync.Mutex
	halls map[uuid.UUID]*entity.Hall
}

func (r *fakeHallRepo) Create(_ context.Context, hall *entity.Hall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *hall
	r.halls[hall.ID] = &cp
	return nil
}

func (r *fakeHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.halls[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeHallRepo) FindAll(_ context.Context) ([]*entity.Hall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Hall
	for _, h := range r.halls {
		cp := *h
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeHallRepo) Update(_ context.Context, hall *entity.Hall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.halls[hall.ID]; !ok {
		return fmt.Errorf("hall %s not found", hall.ID.String())
	}
	cp := *hall
	r.halls[hall.ID] = &cp
	return nil
}

func (r *fakeHallRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.halls[id]; !ok {
		return fmt.Errorf("hall %s not found", id.String())
	}
	delete(r.halls, id)
	return nil
}

// ---------- films ----------

type fakeFilmRepo struct {
	mu       sync.Mutex
	films    map[uuid.UUID]*entity.Film
	sessions *fakeSessionRepo
}

func (r *fakeFilmRepo) Create(_ context.Context, film *entity.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *film
	r.films[film.ID] = &cp
	return nil
}

func (r *fakeFilmRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.films[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeFilmRepo) FindAll(_ context.Context) ([]*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Film
	for _, f := range r.films {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

// FindBySessionDate reproduces the SQL listing: distinct films with a session
// on the date, ordered by the minimum of the sort key over those sessions.
func (r *fakeFilmRepo) FindBySessionDate(_ context.Context, date time.Time, sortBy repository.FilmSort) ([]*entity.Film, error) {
	if r.sessions == nil {
		return nil, nil
	}

	type entry struct {
		film *entity.Film
		key  time.Time
	}

	r.sessions.mu.Lock()
	daySessions := make([]*entity.Session, 0)
	for _, s := range r.sessions.sessions {
		if s.Date.Equal(date) {
			cp := *s
			daySessions = append(daySessions, &cp)
		}
	}
	r.sessions.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := map[uuid.UUID]*entry{}
	minPrice := map[uuid.UUID]int{}
	for _, s := range daySessions {
		film, ok := r.films[s.FilmID]
		if !ok {
			continue
		}

		var key time.Time
		switch sortBy {
		case repository.FilmSortTime:
			key = s.TimeStart
		case repository.FilmSortPrice:
			key = s.CreatedAt
		default:
			key = s.CreatedAt
		}

		e, ok := entries[film.ID]
		if !ok {
			cp := *film
			entries[film.ID] = &entry{film: &cp, key: key}
			minPrice[film.ID] = s.Price
			continue
		}
		if key.Before(e.key) {
			e.key = key
		}
		if s.Price < minPrice[film.ID] {
			minPrice[film.ID] = s.Price
		}
	}

	out := make([]*entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}

	if sortBy == repository.FilmSortPrice {
		sort.Slice(out, func(i, j int) bool {
			return minPrice[out[i].film.ID] < minPrice[out[j].film.ID]
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			return out[i].key.Before(out[j].key)
		})
	}

	films := make([]*entity.Film, len(out))
	for i, e := range out {
		films[i] = e.film
	}
	return films, nil
}

func (r *fakeFilmRepo) Update(_ context.Context, film *entity.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.films[film.ID]; !ok {
		return fmt.Errorf("film %s not found", film.ID.String())
	}
	cp := *film
	r.films[film.ID] = &cp
	return nil
}

func (r *fakeFilmRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.films[id]; !ok {
		return fmt.Errorf("film %s not found", id.String())
	}
	delete(r.films, id)
	return nil
}

// ---------- sessions ----------

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions = append(r.sessions, &cp)
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Session, len(r.sessions))
	for i, s := range r.sessions {
		cp := *s
		out[i] = &cp
	}
	return out, nil
}

func (r *fakeSessionRepo) FindByDate(_ context.Context, date time.Time) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Session
	for _, s := range r.sessions {
		if s.Date.Equal(date) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSessionRepo) FindByFilmID(_ context.Context, filmID uuid.UUID) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Session
	for _, s := range r.sessions {
		if s.FilmID == filmID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ExistsWithAttributes(_ context.Context, date *time.Time, timeStart, timeEnd time.Time, price int, hallID, filmID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if date != nil && !s.Date.Equal(*date) {
			continue
		}
		if s.TimeStart.Equal(timeStart) && s.TimeEnd.Equal(timeEnd) &&
			s.Price == price && s.HallID == hallID && s.FilmID == filmID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSessionRepo) HasConflict(_ context.Context, hallID uuid.UUID, timeStart, timeEnd time.Time, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.HallID != hallID {
			continue
		}
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if s.TimeStart.Before(timeEnd) && s.TimeEnd.After(timeStart) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.ID == session.ID {
			cp := *session
			cp.RestOfSeats = s.RestOfSeats
			r.sessions[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("session %s not found", session.ID.String())
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("session %s not found", id.String())
}

// ---------- purchases ----------

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases []*entity.Purchase
	sessions  *fakeSessionRepo
	users     *fakeUserRepo
	halls     map[uuid.UUID]uuid.UUID // session -> hall, filled by Settle
}

func (r *fakePurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRepo) FindAll(_ context.Context) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Purchase, len(r.purchases))
	for i, p := range r.purchases {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (r *fakePurchaseRepo) FindByBuyerID(_ context.Context, buyerID uuid.UUID) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.purchases {
		if p.BuyerID == buyerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.purchases {
		if p.SessionID == sessionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) ExistsBySessionID(_ context.Context, sessionID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePurchaseRepo) ExistsByHallID(_ context.Context, hallID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if r.halls[p.SessionID] == hallID {
			return true, nil
		}
	}
	return false, nil
}

// Settle mirrors the transactional settlement: the availability check, seat
// decrement, spend credit and insert all happen under one lock.
func (r *fakePurchaseRepo) Settle(_ context.Context, sessionID, buyerID uuid.UUID, amount int) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions == nil {
		return nil, fmt.Errorf("session %s not found", sessionID.String())
	}

	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	var session *entity.Session
	for _, s := range r.sessions.sessions {
		if s.ID == sessionID {
			session = s
			break
		}
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionID.String())
	}

	if amount > session.RestOfSeats {
		return nil, entity.ErrInsufficientSeats
	}

	session.RestOfSeats -= amount

	if r.users != nil {
		r.users.mu.Lock()
		if u, ok := r.users.users[buyerID]; ok {
			u.TotalSpent += int64(session.Price) * int64(amount)
		}
		r.users.mu.Unlock()
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
	r.purchases = append(r.purchases, purchase)

	if r.halls == nil {
		r.halls = map[uuid.UUID]uuid.UUID{}
	}
	r.halls[sessionID] = session.HallID

	return purchase, nil
}
