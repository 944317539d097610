package service

import (
	"context"
	"testing"

	"Lucky/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	accounts := repo.NewMemoryAccountRepo()
	svc := NewAccountService(accounts)

	a, err := svc.Register(ctx, "  ana@example.com ", " pw ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", a.Email)
	assert.Equal(t, "pw", a.Password)
	assert.Equal(t, int64(100), a.Credits)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	accounts := repo.NewMemoryAccountRepo()
	svc := NewAccountService(accounts)

	_, err := svc.Register(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "ana@example.com", "another")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	list, err := accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegister_Empty(t *testing.T) {
	svc := NewAccountService(repo.NewMemoryAccountRepo())
	_, err := svc.Register(context.Background(), "   ", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_StoreError(t *testing.T) {
	svc := NewAccountService(&brokenAccounts{MemoryAccountRepo: repo.NewMemoryAccountRepo(), failUpdate: true})
	_, err := svc.Register(context.Background(), "ana@example.com", "pw")
	assert.ErrorIs(t, err, errDB)
}

func TestValidateCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(repo.NewMemoryAccountRepo())
	created, err := svc.Register(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	a, err := svc.ValidateCredentials(ctx, "ana@example.com", " pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, a.ID)

	_, err = svc.ValidateCredentials(ctx, "ana@example.com", "PW")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateCredentials_StoreError(t *testing.T) {
	svc := NewAccountService(&brokenAccounts{MemoryAccountRepo: repo.NewMemoryAccountRepo(), failGet: true})
	_, err := svc.ValidateCredentials(context.Background(), "ana@example.com", "pw")
	assert.ErrorIs(t, err, errDB)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(repo.NewMemoryAccountRepo())
	created, err := svc.Register(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	a, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, a)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
