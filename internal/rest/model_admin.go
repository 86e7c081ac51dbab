package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"materialAdvisor/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ModelAdminService interface {
	CurrentModel() domain.Model
	Retrain(ctx context.Context) (domain.Model, error)
	Performance() domain.PerformanceSnapshot
	ListFeedback(ctx context.Context) ([]domain.FeedbackEvent, error)
}

type ModelAdminHandler struct {
	service ModelAdminService
	timeout time.Duration
}

func NewModelAdminHandler(service ModelAdminService) *ModelAdminHandler {
	return &ModelAdminHandler{
		service: service,
		timeout: 60 * time.Second,
	}
}

// GET /api/v1/admin/model
func (h *ModelAdminHandler) GetModel(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.service.CurrentModel()))
}

// POST /api/v1/admin/model/retrain
func (h *ModelAdminHandler) Retrain(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	model, err := h.service.Retrain(ctx)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(model))
}

// GET /api/v1/admin/model/performance
func (h *ModelAdminHandler) Performance(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.service.Performance()))
}

// GET /api/v1/admin/feedback?limit=50
// returns the newest events last, like the log itself
func (h *ModelAdminHandler) ListFeedback(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.service.ListFeedback(ctx)
	if err != nil {
		return serviceError(c, err)
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
