package service

import (
	"context"
	"errors"
	"sync"

	dom "Lucky/internal/domain"
	"Lucky/internal/repo"
)

var errDB = errors.New("db down")

type forcedEngine struct {
	out   dom.Outcome
	calls int
	lastP float64
}

func (e *forcedEngine) Play(p float64) dom.Outcome {
	e.calls++
	e.lastP = p
	return e.out
}

// brokenAccounts fails the configured operation and delegates the rest.
type brokenAccounts struct {
	*repo.MemoryAccountRepo
	failGet, failUpdate, failList bool
}

func (b *brokenAccounts) GetByID(ctx context.Context, id int64) (dom.Account, error) {
	if b.failGet {
		return dom.Account{}, errDB
	}
	return b.MemoryAccountRepo.GetByID(ctx, id)
}

func (b *brokenAccounts) UpdateCredits(ctx context.Context, id, credits int64) error {
	if b.failUpdate {
		return errDB
	}
	return b.MemoryAccountRepo.UpdateCredits(ctx, id, credits)
}

func (b *brokenAccounts) List(ctx context.Context) ([]dom.Account, error) {
	if b.failList {
		return nil, errDB
	}
	return b.MemoryAccountRepo.List(ctx)
}

func (b *brokenAccounts) Create(ctx context.Context, email, password string) (dom.Account, error) {
	if b.failUpdate {
		return dom.Account{}, errDB
	}
	return b.MemoryAccountRepo.Create(ctx, email, password)
}

func (b *brokenAccounts) GetByCredentials(ctx context.Context, email, password string) (dom.Account, error) {
	if b.failGet {
		return dom.Account{}, errDB
	}
	return b.MemoryAccountRepo.GetByCredentials(ctx, email, password)
}

type countingSettings struct {
	*repo.MemorySettingsRepo
	gets    int
	failGet bool
}

func (c *countingSettings) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets++
	if c.failGet {
		return "", false, errDB
	}
	return c.MemorySettingsRepo.Get(ctx, key)
}

// gatedSettings returns the value it read, but only after release is closed.
// Only the first Get is held.
type gatedSettings struct {
	*repo.MemorySettingsRepo
	read    chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedSettings() *gatedSettings {
	return &gatedSettings{
		MemorySettingsRepo: repo.NewMemorySettingsRepo(),
		read:               make(chan struct{}),
		release:            make(chan struct{}),
	}
}

func (g *gatedSettings) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := g.MemorySettingsRepo.Get(ctx, key)
	g.once.Do(func() {
		close(g.read)
		<-g.release
	})
	return v, ok, err
}

// ctxSettings fails like a real driver once its context is done.
type ctxSettings struct {
	*repo.MemorySettingsRepo
}

func (c ctxSettings) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return c.MemorySettingsRepo.Get(ctx, key)
}
