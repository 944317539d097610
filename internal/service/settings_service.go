package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"Lucky/internal/cache"
	dom "Lucky/internal/domain"
	"Lucky/internal/repo"
	"Lucky/internal/utils"

	"golang.org/x/sync/singleflight"
)

// SettingsService reads and writes tunable game parameters.
type SettingsService struct {
	repo  repo.SettingsRepo
	cache *cache.SettingsCache
	sf    singleflight.Group
}

// NewSettingsService creates a SettingsService. If c is nil, caching is disabled.
func NewSettingsService(r repo.SettingsRepo, c *cache.SettingsCache) *SettingsService {
	return &SettingsService{repo: r, cache: c}
}

// EnsureDefaults seeds settings that have never been written.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	if err := s.repo.SetIfAbsent(ctx, dom.KeyLossProb, utils.FormatProbability(dom.DefaultLossProb)); err != nil {
		return fmt.Errorf("seed %s: %w", dom.KeyLossProb, err)
	}
	s.invalidateCache(ctx, dom.KeyLossProb)
	return nil
}

// LossProbability returns the raw stored value and whether it is set.
func (s *SettingsService) LossProbability(ctx context.Context) (string, bool, error) {
	return s.get(ctx, dom.KeyLossProb)
}

// GameConfig loads the configuration a play runs with. An unset loss probability
// falls back to dom.DefaultLossProb.
func (s *SettingsService) GameConfig(ctx context.Context) (dom.GameConfig, error) {
	raw, ok, err := s.get(ctx, dom.KeyLossProb)
	if err != nil {
		return dom.GameConfig{}, err
	}
	if !ok {
		return dom.GameConfig{LossProbability: dom.DefaultLossProb}, nil
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return dom.GameConfig{}, fmt.Errorf("parse %s=%q: %w", dom.KeyLossProb, raw, err)
	}
	return dom.GameConfig{LossProbability: p}, nil
}

// SetLossProbability stores p. Values outside [0,1] return ErrInvalidSettingValue
// and leave the stored value untouched.
func (s *SettingsService) SetLossProbability(ctx context.Context, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return ErrInvalidSettingValue
	}
	value := utils.FormatProbability(p)
	if err := s.repo.Set(ctx, dom.KeyLossProb, value); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, dom.KeyLossProb, value, true); err != nil {
			s.invalidateCache(ctx, dom.KeyLossProb)
		}
	}
	return nil
}

func (s *SettingsService) get(ctx context.Context, key string) (string, bool, error) {
	if s.cache == nil {
		return s.repo.Get(ctx, key)
	}
	type lookup struct {
		value string
		found bool
	}
	// Callers share one lookup; it must not die with the first caller's request.
	ctx = context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if value, found, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			return lookup{value, found}, nil
		}
		value, found, err := s.repo.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		_, _ = s.cache.Fill(ctx, key, value, found)
		return lookup{value, found}, nil
	})
	if err != nil {
		return "", false, err
	}
	l := v.(lookup)
	return l.value, l.found, nil
}

func (s *SettingsService) invalidateCache(ctx context.Context, key string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, key)
	}
}
