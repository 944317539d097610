package service

import (
	"context"
	"errors"
	"strings"

	dom "Lucky/internal/domain"
	"Lucky/internal/repo"
	"Lucky/internal/utils"

	"github.com/jackc/pgx/v5"
)

// AccountService handles registration and player sign-in.
// Passwords are stored and compared as plaintext.
type AccountService struct {
	repo repo.AccountRepo
}

// NewAccountService returns a new AccountService.
func NewAccountService(repo repo.AccountRepo) *AccountService {
	return &AccountService{repo: repo}
}

// Register creates an account with the default balance.
func (s *AccountService) Register(ctx context.Context, email, password string) (dom.Account, error) {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return dom.Account{}, ErrInvalidCredentials
	}
	a, err := s.repo.Create(ctx, email, password)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Account{}, ErrDuplicateEmail
		}
		return dom.Account{}, err
	}
	return a, nil
}

// ValidateCredentials returns the account matching email and password exactly.
func (s *AccountService) ValidateCredentials(ctx context.Context, email, password string) (dom.Account, error) {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	if email == "" || password == "" {
		return dom.Account{}, ErrInvalidCredentials
	}
	a, err := s.repo.GetByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Account{}, ErrInvalidCredentials
		}
		return dom.Account{}, err
	}
	return a, nil
}

// Get returns the account by id.
func (s *AccountService) Get(ctx context.Context, id int64) (dom.Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Account{}, ErrAccountNotFound
		}
		return dom.Account{}, err
	}
	return a, nil
}
