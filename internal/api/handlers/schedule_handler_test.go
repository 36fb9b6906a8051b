package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAreaRepo struct {
	areas []domain.ServiceArea
}

func (s *stubAreaRepo) ListAreas(ctx context.Context, svc string) ([]domain.ServiceArea, error) {
	return s.areas, nil
}

func (s *stubAreaRepo) GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error) {
	return nil, repository.ErrNotFound
}

func (s *stubAreaRepo) CreateArea(ctx context.Context, in domain.AreaInput) (*domain.ServiceArea, error) {
	return nil, repository.ErrNotFound
}

func (s *stubAreaRepo) UpdateArea(ctx context.Context, id int64, in domain.AreaInput) (*domain.ServiceArea, error) {
	return nil, repository.ErrNotFound
}

func (s *stubAreaRepo) DeleteArea(ctx context.Context, id int64) error { return repository.ErrNotFound }

func (s *stubAreaRepo) UpdatePredictions(ctx context.Context, preds []domain.Prediction) error {
	return nil
}

func (s *stubAreaRepo) RegisterCompletion(ctx context.Context, ids []int64, when time.Time) error {
	return nil
}

type stubConfigRepo struct {
	rates domain.ProductionRates
}

func (s *stubConfigRepo) GetRates(ctx context.Context) (domain.ProductionRates, error) {
	if s.rates == nil {
		return nil, repository.ErrNotFound
	}
	return s.rates, nil
}

func (s *stubConfigRepo) SaveRates(ctx context.Context, rates domain.ProductionRates) error {
	s.rates = rates
	return nil
}

func scheduleRouter(t *testing.T, areas []domain.ServiceArea, rates domain.ProductionRates) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewScheduleService(&stubAreaRepo{areas: areas}, &stubConfigRepo{rates: rates}, nil, nil)
	// Wednesday 2025-03-05 so completions replan from Thursday.
	svc.WithClock(func() time.Time { return time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC) })

	h := NewScheduleHandler(svc)
	r := gin.New()
	r.POST("/api/v1/areas/:id/complete", h.Complete)
	r.POST("/api/v1/schedule/recalculate", h.Recalculate)
	r.GET("/api/v1/schedule/config", h.GetConfig)
	r.PUT("/api/v1/schedule/config", h.UpdateConfig)
	return r
}

func lotAreas() []domain.ServiceArea {
	lot := 1
	size := 30000.0
	mk := func(id int64) domain.ServiceArea {
		return domain.ServiceArea{ID: id, Lot: &lot, Service: domain.ServiceMowing, SizeM2: &size}
	}
	return []domain.ServiceArea{mk(1), mk(2)}
}

func TestCompleteEndpoint(t *testing.T) {
	r := scheduleRouter(t, lotAreas(), domain.ProductionRates{1: 25000})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/areas/1/complete", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Predictions []domain.Prediction `json:"predictions"`
		Count       int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(2), resp.Predictions[0].AreaID)
	assert.Equal(t, "2025-03-06", resp.Predictions[0].NextDate)
}

func TestCompleteEndpoint_InvalidID(t *testing.T) {
	r := scheduleRouter(t, lotAreas(), domain.ProductionRates{1: 25000})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/areas/abc/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecalculateEndpoint(t *testing.T) {
	r := scheduleRouter(t, lotAreas(), domain.ProductionRates{1: 25000})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/recalculate", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Predictions []domain.Prediction `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Predictions, 2)
	assert.Equal(t, "2025-03-05", resp.Predictions[0].NextDate, "manual recalculation starts today")
}

func TestConfigEndpoints(t *testing.T) {
	r := scheduleRouter(t, nil, domain.ProductionRates{1: 25000, 2: 18000})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/config", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mowing_production_rate":{"1":25000,"2":18000}}`, w.Body.String())

	body := `{"mowing_production_rate":{"1":30000,"2":20000}}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/schedule/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUpdateConfig_RejectsNonPositiveRate(t *testing.T) {
	r := scheduleRouter(t, nil, domain.ProductionRates{1: 25000})

	body := `{"mowing_production_rate":{"1":0}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedule/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}
