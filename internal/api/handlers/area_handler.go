package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/service"
)

type AreaHandler struct {
	service *service.AreaService
}

func NewAreaHandler(service *service.AreaService) *AreaHandler {
	return &AreaHandler{service: service}
}

func (h *AreaHandler) List(c *gin.Context) {
	areas, err := h.service.List(c.Request.Context(), strings.TrimSpace(c.Query("servico")))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list areas")
		return
	}

	c.JSON(http.StatusOK, gin.H{"areas": areas, "count": len(areas)})
}

func (h *AreaHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	area, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "area not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to get area")
		return
	}

	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) Create(c *gin.Context) {
	var in domain.AreaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid area payload: "+err.Error())
		return
	}

	area, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to create area")
		return
	}

	c.JSON(http.StatusCreated, area)
}

func (h *AreaHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in domain.AreaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid area payload: "+err.Error())
		return
	}

	area, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "area not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to update area")
		return
	}

	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "area not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to delete area")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AreaHandler) Dashboard(c *gin.Context) {
	filter := domain.DashboardFilter{
		Service: strings.TrimSpace(c.Query("servico")),
	}

	if months, err := strconv.Atoi(c.DefaultQuery("months", "12")); err == nil && months > 0 {
		filter.Months = months
	}

	if lots := strings.TrimSpace(c.Query("lots")); lots != "" {
		for _, part := range strings.Split(lots, ",") {
			if lot, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				filter.Lots = append(filter.Lots, lot)
			}
		}
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid area id")
		return 0, false
	}
	return id, true
}
