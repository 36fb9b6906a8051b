package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/config"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix = "dashboard"
	scanBatchSize      = 100
)

// DashboardCache caches the aggregate dashboard payload. Any write that
// changes predictions or completions must call InvalidateAll.
type DashboardCache interface {
	Get(ctx context.Context, filter domain.DashboardFilter) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, filter domain.DashboardFilter, dashboard *domain.Dashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, filter domain.DashboardFilter) (*domain.Dashboard, bool, error) {
	key := buildDashboardKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, filter domain.DashboardFilter, dashboard *domain.Dashboard) error {
	key := buildDashboardKey(filter)
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (n *noopDashboardCache) Get(ctx context.Context, filter domain.DashboardFilter) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, filter domain.DashboardFilter, dashboard *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDashboardKey(filter domain.DashboardFilter) string {
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, dashboardFilterHash(filter))
}

func dashboardFilterHash(filter domain.DashboardFilter) string {
	lots := make([]string, 0, len(filter.Lots))
	for _, lot := range filter.Lots {
		lots = append(lots, strconv.Itoa(lot))
	}
	sort.Strings(lots)

	parts := []string{
		"lots=" + strings.Join(lots, ","),
		"service=" + filter.Service,
		"months=" + strconv.Itoa(filter.Months),
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
