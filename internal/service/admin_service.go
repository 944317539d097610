package service

import (
	"context"
	"crypto/subtle"
	"strings"

	dom "Lucky/internal/domain"
	"Lucky/internal/repo"
)

// Dashboard is what the admin sees: the full roster and the stored loss probability.
type Dashboard struct {
	Accounts    []dom.Account
	LossProb    string
	LossProbSet bool
}

// AdminService backs the admin surface. The admin identity is a pair of configured
// credentials, not an account.
type AdminService struct {
	email    string
	password string
	accounts repo.AccountRepo
	settings *SettingsService
}

func NewAdminService(email, password string, accounts repo.AccountRepo, settings *SettingsService) *AdminService {
	return &AdminService{email: email, password: password, accounts: accounts, settings: settings}
}

// Login checks the configured admin credentials.
func (s *AdminService) Login(email, password string) error {
	email, password = strings.TrimSpace(email), strings.TrimSpace(password)
	okEmail := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	okPassword := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !okEmail || !okPassword {
		return ErrInvalidCredentials
	}
	return nil
}

// UpdateLossProbability stores p when it lies in [0,1]; otherwise ErrInvalidSettingValue.
func (s *AdminService) UpdateLossProbability(ctx context.Context, p float64) error {
	return s.settings.SetLossProbability(ctx, p)
}

func (s *AdminService) ListAccounts(ctx context.Context) ([]dom.Account, error) {
	return s.accounts.List(ctx)
}

func (s *AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	list, err := s.accounts.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	lp, ok, err := s.settings.LossProbability(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Accounts: list, LossProb: lp, LossProbSet: ok}, nil
}
