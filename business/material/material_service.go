package material

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"materialAdvisor/domain"
	"materialAdvisor/pkg/logger"
)

// MaterialRepository contract interface
type MaterialRepository interface {
	FindAll(ctx context.Context) ([]domain.MaterialRecord, error)
	FindByID(ctx context.Context, id string) (domain.MaterialRecord, error)
}

type materialService struct {
	materialRepo MaterialRepository
}

func NewMaterialService(materialRepo MaterialRepository) *materialService {
	return &materialService{
		materialRepo: materialRepo,
	}
}

// ListMaterials returns the catalog, optionally narrowed to one category.
func (s *materialService) ListMaterials(ctx context.Context, category string) ([]domain.MaterialRecord, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list materials")
		return nil, fmt.Errorf("context error: %w", err)
	}

	materials, err := s.materialRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all materials", "error", err)
		return nil, err
	}

	if category == "" {
		return materials, nil
	}

	out := make([]domain.MaterialRecord, 0, len(materials))
	for _, m := range materials {
		if strings.EqualFold(m.Category, category) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *materialService) GetMaterial(ctx context.Context, id string) (*domain.MaterialRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("invalid material id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get material")
		return nil, fmt.Errorf("context error: %w", err)
	}

	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrMaterialNotFound) {
			logger.Error("failed to find material by id", "material_id", id, "error", err)
		}
		return nil, err
	}

	return &m, nil
}
