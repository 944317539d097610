package service

import (
	"context"
	"errors"
	"fmt"

	dom "Lucky/internal/domain"
	"Lucky/internal/repo"

	"github.com/jackc/pgx/v5"
)

// PlayCost is what one play costs over HTTP.
const PlayCost int64 = 5

// OutcomeEngine decides a single play given the probability of losing.
type OutcomeEngine interface {
	Play(lossProbability float64) dom.Outcome
}

// PlayService runs plays: check funds, draw, persist the new balance.
//
// Read and write of the balance are separate statements with no lock between
// them, so two concurrent plays on one account can overwrite each other.
type PlayService struct {
	accounts repo.AccountRepo
	settings *SettingsService
	engine   OutcomeEngine
}

func NewPlayService(accounts repo.AccountRepo, settings *SettingsService, engine OutcomeEngine) *PlayService {
	return &PlayService{accounts: accounts, settings: settings, engine: engine}
}

func (s *PlayService) Play(ctx context.Context, accountID, cost int64) (dom.PlayResult, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.PlayResult{}, ErrAccountNotFound
		}
		return dom.PlayResult{}, fmt.Errorf("load account: %w", err)
	}
	if a.Credits < cost {
		return dom.PlayResult{}, ErrInsufficientCredits
	}

	cfg, err := s.settings.GameConfig(ctx)
	if err != nil {
		return dom.PlayResult{}, fmt.Errorf("load game config: %w", err)
	}
	out := s.engine.Play(cfg.LossProbability)

	balance := a.Credits - cost
	if out.Win {
		balance += out.Prize
	}
	if err := s.accounts.UpdateCredits(ctx, a.ID, balance); err != nil {
		return dom.PlayResult{}, fmt.Errorf("update credits: %w", err)
	}
	return dom.PlayResult{Win: out.Win, Prize: out.Prize, Cost: cost, Balance: balance}, nil
}
