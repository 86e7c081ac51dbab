package rest

import (
	"context"
	"net/http"
	"time"

	"materialAdvisor/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type FeedbackRequest struct {
	SessionID          string                 `json:"session_id" validate:"max=128"`
	MaterialID         string                 `json:"material_id" validate:"required"`
	Requirements       domain.RequirementSpec `json:"requirements"`
	FeedbackType       string                 `json:"feedback_type" validate:"required,oneof=rating selection"`
	Rating             *int                   `json:"rating" validate:"omitempty,min=1,max=5"`
	Selected           *bool                  `json:"selected"`
	ApplicationContext string                 `json:"application_context" validate:"max=512"`
	Comment            string                 `json:"comment" validate:"max=2000"`
	Timestamp          *time.Time             `json:"timestamp"`
}

func (r FeedbackRequest) toEvent() domain.FeedbackEvent {
	ev := domain.FeedbackEvent{
		SessionID:          r.SessionID,
		MaterialID:         r.MaterialID,
		Requirements:       r.Requirements,
		FeedbackType:       r.FeedbackType,
		Rating:             r.Rating,
		Selected:           r.Selected,
		ApplicationContext: r.ApplicationContext,
		Comment:            r.Comment,
	}
	if r.Timestamp != nil {
		ev.Timestamp = r.Timestamp.UTC()
	}
	return ev
}

// POST /api/v1/feedback
func (h *RecommendHandler) Feedback(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.recommendService.SubmitFeedback(ctx, req.toEvent())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}
