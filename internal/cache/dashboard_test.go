package cache

import (
	"context"
	"testing"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardKey_DeterministicAcrossLotOrder(t *testing.T) {
	a := buildDashboardKey(domain.DashboardFilter{Lots: []int{2, 1}, Months: 6})
	b := buildDashboardKey(domain.DashboardFilter{Lots: []int{1, 2}, Months: 6})
	assert.Equal(t, a, b, "lot order must not change the cache key")

	c := buildDashboardKey(domain.DashboardFilter{Lots: []int{1}, Months: 6})
	assert.NotEqual(t, a, c, "different filters must not collide")
}

func TestNoopDashboardCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopDashboardCache()

	_, ok, err := c.Get(ctx, domain.DashboardFilter{})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, domain.DashboardFilter{}, &domain.Dashboard{}))
	require.NoError(t, c.InvalidateAll(ctx))
}
