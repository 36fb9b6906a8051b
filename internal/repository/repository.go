// backend-go/internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// AreaRepository persists service areas and their schedule fields.
type AreaRepository interface {
	ListAreas(ctx context.Context, service string) ([]domain.ServiceArea, error)
	GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error)
	CreateArea(ctx context.Context, in domain.AreaInput) (*domain.ServiceArea, error)
	UpdateArea(ctx context.Context, id int64, in domain.AreaInput) (*domain.ServiceArea, error)
	DeleteArea(ctx context.Context, id int64) error

	// UpdatePredictions writes the scheduler output back in one
	// transaction, so a half-applied recalculation never becomes visible.
	UpdatePredictions(ctx context.Context, preds []domain.Prediction) error

	// RegisterCompletion stamps ultima_rocagem on the areas and appends
	// to the mowing history used by the production chart.
	RegisterCompletion(ctx context.Context, ids []int64, when time.Time) error
}

// ConfigRepository persists the per-lot production rates.
type ConfigRepository interface {
	GetRates(ctx context.Context) (domain.ProductionRates, error)
	SaveRates(ctx context.Context, rates domain.ProductionRates) error
}

// DashboardRepository serves the aggregate queries behind the dashboard.
type DashboardRepository interface {
	LotSummary(ctx context.Context, filter domain.DashboardFilter) ([]domain.LotSummary, error)
	Production(ctx context.Context, filter domain.DashboardFilter) ([]domain.ProductionPoint, error)
}
