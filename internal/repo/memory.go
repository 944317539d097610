package repo

import (
	"context"
	"sort"
	"sync"

	dom "Lucky/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemoryAccountRepo is an in-process AccountRepo. It reports the same errors the
// Postgres repo does (pgx.ErrNoRows, unique violation 23505) so services treat both alike.
type MemoryAccountRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]dom.Account
	byEmail map[string]int64
}

func NewMemoryAccountRepo() *MemoryAccountRepo {
	return &MemoryAccountRepo{
		byID:    make(map[int64]dom.Account),
		byEmail: make(map[string]int64),
	}
}

func (r *MemoryAccountRepo) Create(_ context.Context, email, password string) (dom.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return dom.Account{}, &pgconn.PgError{
			Code:           "23505",
			Message:        "duplicate key value violates unique constraint",
			ConstraintName: "users_email_key",
		}
	}
	r.nextID++
	a := dom.Account{ID: r.nextID, Email: email, Password: password, Credits: dom.DefaultCredits}
	r.byID[a.ID] = a
	r.byEmail[email] = a.ID
	return a, nil
}

func (r *MemoryAccountRepo) GetByCredentials(_ context.Context, email, password string) (dom.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return dom.Account{}, pgx.ErrNoRows
	}
	a := r.byID[id]
	if a.Password != password {
		return dom.Account{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *MemoryAccountRepo) GetByID(_ context.Context, id int64) (dom.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return dom.Account{}, pgx.ErrNoRows
	}
	return a, nil
}

func (r *MemoryAccountRepo) UpdateCredits(_ context.Context, id, credits int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		// UPDATE ... WHERE id = $1 touching no rows is not an error in Postgres either.
		return nil
	}
	a.Credits = credits
	r.byID[id] = a
	return nil
}

func (r *MemoryAccountRepo) List(_ context.Context) ([]dom.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]dom.Account, 0, len(r.byID))
	for _, a := range r.byID {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// MemorySettingsRepo is an in-process SettingsRepo.
type MemorySettingsRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{values: make(map[string]string)}
}

func (r *MemorySettingsRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *MemorySettingsRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *MemorySettingsRepo) SetIfAbsent(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[key]; !ok {
		r.values[key] = value
	}
	return nil
}
