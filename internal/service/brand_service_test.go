package service

import (
	"context"
	"testing"

	"modamart/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maison Nord", "maison-nord"},
		{"  Acme & Co.  ", "acme-co"},
		{"ÉLAN", "élan"},
		{"already-slugged", "already-slugged"},
		{"Numbers 2 Go", "numbers-2-go"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "Slugify(%q)", tt.name)
	}
}

func TestBrandOnboardingLifecycle(t *testing.T) {
	svc := NewBrandService(newMockBrandRepository())
	ctx := context.Background()

	brand, err := svc.Onboard(ctx, "Maison Nord", "Scandinavian basics", "https://cdn.example.com/logos/mn.png")
	require.NoError(t, err)
	assert.Equal(t, "maison-nord", brand.Slug)
	assert.Equal(t, domain.BrandStatusPending, brand.Status)

	// Same name means same slug: the marketplace treats it as a duplicate.
	_, err = svc.Onboard(ctx, "Maison Nord", "", "")
	assert.ErrorIs(t, err, ErrDuplicateBrand)

	approved, err := svc.SetStatus(ctx, brand.ID, domain.BrandStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.BrandStatusApproved, approved.Status)

	_, err = svc.SetStatus(ctx, brand.ID, "frozen")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	pending, err := svc.List(ctx, domain.BrandStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	bySlug, err := svc.GetBySlug(ctx, "maison-nord")
	require.NoError(t, err)
	assert.Equal(t, brand.ID, bySlug.ID)
}
