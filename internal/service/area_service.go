package service

import (
	"context"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/cache"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// AreaService handles service-area CRUD and the dashboard reads.
type AreaService struct {
	areas     repository.AreaRepository
	dashboard repository.DashboardRepository
	cache     cache.DashboardCache
}

func NewAreaService(areas repository.AreaRepository, dashboard repository.DashboardRepository, cacheImpl cache.DashboardCache) *AreaService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &AreaService{areas: areas, dashboard: dashboard, cache: cacheImpl}
}

func (s *AreaService) List(ctx context.Context, service string) ([]domain.ServiceArea, error) {
	return s.areas.ListAreas(ctx, service)
}

func (s *AreaService) Get(ctx context.Context, id int64) (*domain.ServiceArea, error) {
	return s.areas.GetArea(ctx, id)
}

func (s *AreaService) Create(ctx context.Context, in domain.AreaInput) (*domain.ServiceArea, error) {
	area, err := s.areas.CreateArea(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	return area, nil
}

func (s *AreaService) Update(ctx context.Context, id int64, in domain.AreaInput) (*domain.ServiceArea, error) {
	area, err := s.areas.UpdateArea(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	return area, nil
}

func (s *AreaService) Delete(ctx context.Context, id int64) error {
	if err := s.areas.DeleteArea(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)

	return nil
}

// Dashboard serves the aggregate payload, cache-aside.
func (s *AreaService) Dashboard(ctx context.Context, filter domain.DashboardFilter) (*domain.Dashboard, error) {
	if dashboard, ok, err := s.cache.Get(ctx, filter); err == nil && ok {
		return dashboard, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("areas: dashboard cache get failed")
	}

	summary, err := s.dashboard.LotSummary(ctx, filter)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		summary = make([]domain.LotSummary, 0)
	}

	production, err := s.dashboard.Production(ctx, filter)
	if err != nil {
		return nil, err
	}
	if production == nil {
		production = make([]domain.ProductionPoint, 0)
	}

	dashboard := &domain.Dashboard{
		Summary:    summary,
		Production: production,
	}

	if err := s.cache.Set(ctx, filter, dashboard); err != nil {
		log.Warn().Err(err).Msg("areas: dashboard cache set failed")
	}

	return dashboard, nil
}

func (s *AreaService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("areas: dashboard cache invalidation failed")
	}
}
