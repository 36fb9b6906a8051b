package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/schedule"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/service"
)

type ScheduleHandler struct {
	service *service.ScheduleService
}

func NewScheduleHandler(service *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Recalculate rebuilds every lot's queue from today.
func (h *ScheduleHandler) Recalculate(c *gin.Context) {
	preds, err := h.service.RecalculateAll(c.Request.Context())
	if err != nil {
		scheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": preds, "count": len(preds)})
}

// Complete marks one area as mowed and shifts its lot's queue.
func (h *ScheduleHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	preds, err := h.service.RegisterCompletion(c.Request.Context(), []int64{id})
	if err != nil {
		scheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": preds, "count": len(preds)})
}

type completionsInput struct {
	AreaIDs []int64 `json:"area_ids" binding:"required,min=1"`
}

// CompleteBatch registers several completions at once; each affected lot
// is recalculated a single time.
func (h *ScheduleHandler) CompleteBatch(c *gin.Context) {
	var in completionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid completions payload: "+err.Error())
		return
	}

	preds, err := h.service.RegisterCompletion(c.Request.Context(), in.AreaIDs)
	if err != nil {
		scheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": preds, "count": len(preds)})
}

func (h *ScheduleHandler) GetConfig(c *gin.Context) {
	rates, err := h.service.Rates(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to load schedule config")
		return
	}

	c.JSON(http.StatusOK, gin.H{"mowing_production_rate": ratesPayload(rates)})
}

func (h *ScheduleHandler) UpdateConfig(c *gin.Context) {
	var in domain.RatesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid config payload: "+err.Error())
		return
	}

	rates := make(domain.ProductionRates, len(in.Rates))
	for key, rate := range in.Rates {
		lot, err := strconv.Atoi(key)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid lote number: "+key)
			return
		}
		rates[lot] = rate
	}

	if err := h.service.UpdateRates(c.Request.Context(), rates); err != nil {
		scheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mowing_production_rate": ratesPayload(rates)})
}

func ratesPayload(rates domain.ProductionRates) map[string]float64 {
	out := make(map[string]float64, len(rates))
	for lot, rate := range rates {
		out[strconv.Itoa(lot)] = rate
	}
	return out
}

func scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRate), errors.Is(err, schedule.ErrNoRate):
		errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, "schedule operation failed")
	}
}
