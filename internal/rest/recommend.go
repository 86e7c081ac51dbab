package rest

import (
	"context"
	"net/http"
	"time"

	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"
	"materialAdvisor/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, spec domain.RequirementSpec, limit int) (recommend.RecommendResult, error)
		DebugRecommend(ctx context.Context, spec domain.RequirementSpec) ([]domain.DebugRecommendation, error)
		SubmitFeedback(ctx context.Context, event domain.FeedbackEvent) (domain.FeedbackEvent, error)
	}

	RecommendRequest struct {
		Requirements domain.RequirementSpec `json:"requirements"`
		Limit        int                    `json:"limit" validate:"gte=0,lte=100"`
	}
)

func NewRecommendHandler(svc RecommendService, timeout time.Duration) *RecommendHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
		timeout:          timeout,
	}
}

// POST /api/v1/recommendations
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RecommendRequests.Inc()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.recommendService.Recommend(ctx, req.Requirements, req.Limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// POST /api/v1/recommendations/debug
func (h *RecommendHandler) DebugRecommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendService.DebugRecommend(ctx, req.Requirements)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
