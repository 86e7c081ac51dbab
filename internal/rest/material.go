package rest

import (
	"context"
	"net/http"
	"time"

	"materialAdvisor/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type MaterialService interface {
	ListMaterials(ctx context.Context, category string) ([]domain.MaterialRecord, error)
	GetMaterial(ctx context.Context, id string) (*domain.MaterialRecord, error)
}

type MaterialHandler struct {
	materialService MaterialService
	timeout         time.Duration
}

func NewMaterialHandler(materialService MaterialService) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		timeout:         10 * time.Second,
	}
}

// GET /api/v1/materials?category=metal
func (h *MaterialHandler) ListMaterials(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	materials, err := h.materialService.ListMaterials(ctx, c.QueryParam("category"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(materials))
}

// GET /api/v1/materials/:id
func (h *MaterialHandler) GetMaterial(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	material, err := h.materialService.GetMaterial(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(material))
}
