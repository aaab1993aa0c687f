package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"modamart/internal/domain"
	"modamart/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBrandNotFound  = repository.ErrBrandNotFound
	ErrDuplicateBrand = repository.ErrBrandAlreadyExists
	ErrInvalidStatus  = errors.New("invalid brand status")
)

// BrandService handles marketplace brand onboarding and moderation.
type BrandService interface {
	Onboard(ctx context.Context, name, description, logoURL string) (*domain.Brand, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, description, logoURL string) (*domain.Brand, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Brand, error)
	List(ctx context.Context, status string) ([]*domain.Brand, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)
}

type brandService struct {
	brandRepo repository.BrandRepository
}

// NewBrandService creates a new instance of BrandService
func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

// Onboard registers a new brand in pending state. The slug is derived
// from the name; a slug collision means the brand already exists.
func (s *brandService) Onboard(ctx context.Context, name, description, logoURL string) (*domain.Brand, error) {
	now := time.Now()
	brand := &domain.Brand{
		ID:          uuid.New(),
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		LogoURL:     logoURL,
		Status:      domain.BrandStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		if err == repository.ErrBrandAlreadyExists {
			return nil, ErrDuplicateBrand
		}
		return nil, fmt.Errorf("failed to onboard brand: %w", err)
	}

	return brand, nil
}

// UpdateProfile changes a brand's public profile, re-deriving the slug
// when the name changes.
func (s *brandService) UpdateProfile(ctx context.Context, id uuid.UUID, name, description, logoURL string) (*domain.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	brand.Name = name
	brand.Slug = Slugify(name)
	brand.Description = description
	brand.LogoURL = logoURL
	brand.UpdatedAt = time.Now()

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// SetStatus moves a brand through the moderation lifecycle.
func (s *brandService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Brand, error) {
	switch status {
	case domain.BrandStatusPending, domain.BrandStatusApproved, domain.BrandStatusDisabled:
	default:
		return nil, ErrInvalidStatus
	}

	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	brand.Status = status
	brand.UpdatedAt = time.Now()

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// List returns brands, optionally filtered by status.
func (s *brandService) List(ctx context.Context, status string) ([]*domain.Brand, error) {
	if status != "" {
		switch status {
		case domain.BrandStatusPending, domain.BrandStatusApproved, domain.BrandStatusDisabled:
		default:
			return nil, ErrInvalidStatus
		}
	}
	return s.brandRepo.List(ctx, status)
}

// GetByID retrieves a brand by ID.
func (s *brandService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	return s.brandRepo.FindByID(ctx, id)
}

// GetBySlug retrieves a brand by its URL slug.
func (s *brandService) GetBySlug(ctx context.Context, slug string) (*domain.Brand, error) {
	return s.brandRepo.FindBySlug(ctx, slug)
}

// Slugify lowercases the name and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
