package service

import (
	"context"
	"errors"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/cache"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/schedule"
	"github.com/rs/zerolog/log"
)

// ScheduleService owns everything that touches the mowing queue: manual
// full recalculations, completion-triggered recalculations and the
// production-rate configuration.
type ScheduleService struct {
	areas        repository.AreaRepository
	config       repository.ConfigRepository
	cache        cache.DashboardCache
	cal          schedule.Calendar
	defaultRates domain.ProductionRates

	// now is injected so schedules are reproducible in tests.
	now func() time.Time
}

func NewScheduleService(areas repository.AreaRepository, config repository.ConfigRepository, cacheImpl cache.DashboardCache, defaultRates domain.ProductionRates) *ScheduleService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &ScheduleService{
		areas:        areas,
		config:       config,
		cache:        cacheImpl,
		defaultRates: defaultRates,
		now:          time.Now,
	}
}

// WithClock overrides the reference clock.
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

// Rates returns the configured production rates, falling back to the
// env-provided defaults until the config rows exist.
func (s *ScheduleService) Rates(ctx context.Context) (domain.ProductionRates, error) {
	rates, err := s.config.GetRates(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return s.defaultRates, nil
	}
	if err != nil {
		return nil, err
	}

	return rates, nil
}

// UpdateRates validates and persists new production rates. Predictions
// keep their old dates until the next recalculation.
func (s *ScheduleService) UpdateRates(ctx context.Context, rates domain.ProductionRates) error {
	if err := rates.Validate(); err != nil {
		return err
	}

	return s.config.SaveRates(ctx, rates)
}

// RecalculateAll rebuilds the queue of every configured lot starting from
// today and persists the result.
func (s *ScheduleService) RecalculateAll(ctx context.Context) ([]domain.Prediction, error) {
	rates, err := s.Rates(ctx)
	if err != nil {
		return nil, err
	}

	areas, err := s.areas.ListAreas(ctx, domain.ServiceMowing)
	if err != nil {
		return nil, err
	}

	preds, err := s.cal.ForAllLots(areas, rates, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.areas.UpdatePredictions(ctx, preds); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	return preds, nil
}

// RegisterCompletion stamps the completed areas and shifts the rest of
// their lots' queues, starting tomorrow.
func (s *ScheduleService) RegisterCompletion(ctx context.Context, completedIDs []int64) ([]domain.Prediction, error) {
	if len(completedIDs) == 0 {
		return nil, nil
	}

	rates, err := s.Rates(ctx)
	if err != nil {
		return nil, err
	}

	// Snapshot before stamping so the completed areas still resolve to
	// their lots.
	areas, err := s.areas.ListAreas(ctx, domain.ServiceMowing)
	if err != nil {
		return nil, err
	}

	when := s.now()
	if err := s.areas.RegisterCompletion(ctx, completedIDs, when); err != nil {
		return nil, err
	}

	preds, err := s.cal.AfterCompletion(areas, completedIDs, rates, when)
	if err != nil {
		return nil, err
	}

	if err := s.areas.UpdatePredictions(ctx, preds); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	return preds, nil
}

func (s *ScheduleService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("schedule: dashboard cache invalidation failed")
	}
}
