package service

import (
	"context"
	"fmt"
	"strings"

	"modamart/internal/domain"
	"modamart/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrColorAlreadyExists = repository.ErrColorAlreadyExists
	ErrSizeAlreadyExists  = repository.ErrSizeAlreadyExists
)

// TaxonomyService manages the color and size vocabularies variants
// reference. Names are normalized so "black" and "Black " collapse to
// a single entry.
type TaxonomyService interface {
	CreateColor(ctx context.Context, name string) (*domain.Color, error)
	CreateSize(ctx context.Context, name string) (*domain.Size, error)
	ListColors(ctx context.Context) ([]*domain.Color, error)
	ListSizes(ctx context.Context) ([]*domain.Size, error)
}

type taxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyService creates a new instance of TaxonomyService
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{taxonomyRepo: taxonomyRepo}
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func (s *taxonomyService) CreateColor(ctx context.Context, name string) (*domain.Color, error) {
	color := &domain.Color{
		ID:   uuid.New(),
		Name: normalizeName(name),
	}

	if err := s.taxonomyRepo.CreateColor(ctx, color); err != nil {
		if err == repository.ErrColorAlreadyExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create color: %w", err)
	}

	return color, nil
}

func (s *taxonomyService) CreateSize(ctx context.Context, name string) (*domain.Size, error) {
	size := &domain.Size{
		ID:   uuid.New(),
		Name: normalizeName(name),
	}

	if err := s.taxonomyRepo.CreateSize(ctx, size); err != nil {
		if err == repository.ErrSizeAlreadyExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create size: %w", err)
	}

	return size, nil
}

func (s *taxonomyService) ListColors(ctx context.Context) ([]*domain.Color, error) {
	return s.taxonomyRepo.ListColors(ctx)
}

func (s *taxonomyService) ListSizes(ctx context.Context) ([]*domain.Size, error) {
	return s.taxonomyRepo.ListSizes(ctx)
}
