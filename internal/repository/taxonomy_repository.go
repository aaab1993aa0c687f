package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modamart/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrColorNotFound      = errors.New("color not found")
	ErrSizeNotFound       = errors.New("size not found")
	ErrColorAlreadyExists = errors.New("color with this name already exists")
	ErrSizeAlreadyExists  = errors.New("size with this name already exists")
)

// TaxonomyRepository manages the shared color and size vocabularies that
// variants reference.
type TaxonomyRepository interface {
	CreateColor(ctx context.Context, color *domain.Color) error
	CreateSize(ctx context.Context, size *domain.Size) error
	ListColors(ctx context.Context) ([]*domain.Color, error)
	ListSizes(ctx context.Context) ([]*domain.Size, error)
	FindColorByID(ctx context.Context, id uuid.UUID) (*domain.Color, error)
	FindSizeByID(ctx context.Context, id uuid.UUID) (*domain.Size, error)
}

type taxonomyRepository struct {
	db *sql.DB
}

// NewTaxonomyRepository creates a new instance of TaxonomyRepository
func NewTaxonomyRepository(db *sql.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) CreateColor(ctx context.Context, color *domain.Color) error {
	query := `INSERT INTO colors (id, name) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, color.ID, color.Name)
	if err != nil {
		if strings.Contains(err.Error(), "colors_name_key") {
			return ErrColorAlreadyExists
		}
		return fmt.Errorf("failed to create color: %w", err)
	}

	return nil
}

func (r *taxonomyRepository) CreateSize(ctx context.Context, size *domain.Size) error {
	query := `INSERT INTO sizes (id, name) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, size.ID, size.Name)
	if err != nil {
		if strings.Contains(err.Error(), "sizes_name_key") {
			return ErrSizeAlreadyExists
		}
		return fmt.Errorf("failed to create size: %w", err)
	}

	return nil
}

func (r *taxonomyRepository) ListColors(ctx context.Context) ([]*domain.Color, error) {
	query := `SELECT id, name FROM colors ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	defer rows.Close()

	colors := []*domain.Color{}
	for rows.Next() {
		color := &domain.Color{}
		if err := rows.Scan(&color.ID, &color.Name); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		colors = append(colors, color)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colors: %w", err)
	}

	return colors, nil
}

func (r *taxonomyRepository) ListSizes(ctx context.Context) ([]*domain.Size, error) {
	query := `SELECT id, name FROM sizes ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	defer rows.Close()

	sizes := []*domain.Size{}
	for rows.Next() {
		size := &domain.Size{}
		if err := rows.Scan(&size.ID, &size.Name); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, size)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sizes: %w", err)
	}

	return sizes, nil
}

func (r *taxonomyRepository) FindColorByID(ctx context.Context, id uuid.UUID) (*domain.Color, error) {
	query := `SELECT id, name FROM colors WHERE id = $1`

	color := &domain.Color{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&color.ID, &color.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrColorNotFound
		}
		return nil, fmt.Errorf("failed to find color by ID: %w", err)
	}

	return color, nil
}

func (r *taxonomyRepository) FindSizeByID(ctx context.Context, id uuid.UUID) (*domain.Size, error) {
	query := `SELECT id, name FROM sizes WHERE id = $1`

	size := &domain.Size{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&size.ID, &size.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSizeNotFound
		}
		return nil, fmt.Errorf("failed to find size by ID: %w", err)
	}

	return size, nil
}
