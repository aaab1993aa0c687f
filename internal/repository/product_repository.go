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
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// ProductRepository defines the interface for product data access. FindByID
// returns the full storefront aggregate (product, brand name, variants with
// embedded colors and sizes, gallery images); ListVariants is the narrower
// read used to recover variant data when an aggregate arrives incomplete.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, brandID *uuid.UUID, page, pageSize int, sortBy string, sortOrder SortOrder) ([]*domain.Product, int, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	CreateVariant(ctx context.Context, variant *domain.Variant) error
	UpdateVariant(ctx context.Context, variant *domain.Variant) error
	ListVariants(ctx context.Context, productID uuid.UUID) ([]domain.Variant, error)
	AddImage(ctx context.Context, image *domain.Image) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, title, description, brand_id, status, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Title,
		product.Description,
		product.BrandID,
		product.Status,
		product.Category,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product in the database using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, title = $3, description = $4, brand_id = $5,
		    status = $6, category = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Title,
		product.Description,
		product.BrandID,
		product.Status,
		product.Category,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product; variants and images go with it via ON DELETE CASCADE
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves the product aggregate: base row with brand name,
// variants in insertion order, and gallery images in position order
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.title, p.description, p.brand_id, COALESCE(b.name, ''),
		       p.status, p.category, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Title,
		&product.Description,
		&product.BrandID,
		&product.BrandName,
		&product.Status,
		&product.Category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	variants, err := r.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	images, err := r.listImages(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Images = images

	return product, nil
}

// ListVariants retrieves a product's variants in insertion order with their
// colors and sizes embedded
func (r *productRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]domain.Variant, error) {
	query := `
		SELECT v.id, v.product_id, v.color_id, v.size_id, v.stock, v.low_stock_threshold,
		       v.price::text, COALESCE(v.discount_price::text, ''), v.sku, v.is_active,
		       c.name, s.name, v.created_at, v.updated_at
		FROM product_variants v
		JOIN colors c ON c.id = v.color_id
		JOIN sizes s ON s.id = v.size_id
		WHERE v.product_id = $1
		ORDER BY v.created_at ASC, v.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	variants := []domain.Variant{}
	for rows.Next() {
		v := domain.Variant{}
		err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.ColorID,
			&v.SizeID,
			&v.Stock,
			&v.LowStockThreshold,
			&v.Price,
			&v.DiscountPrice,
			&v.SKU,
			&v.IsActive,
			&v.Color.Name,
			&v.Size.Name,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		v.Color.ID = v.ColorID
		v.Size.ID = v.SizeID
		variants = append(variants, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}

	return variants, nil
}

func (r *productRepository) listImages(ctx context.Context, productID uuid.UUID) ([]domain.Image, error) {
	query := `
		SELECT id, product_id, url, position
		FROM product_images
		WHERE product_id = $1
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []domain.Image{}
	for rows.Next() {
		img := domain.Image{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// CreateVariant inserts a new variant; an empty discount price is stored as NULL
func (r *productRepository) CreateVariant(ctx context.Context, variant *domain.Variant) error {
	query := `
		INSERT INTO product_variants (id, product_id, color_id, size_id, stock, low_stock_threshold,
		                              price, discount_price, sku, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, NULLIF($8, '')::numeric, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		variant.ID,
		variant.ProductID,
		variant.ColorID,
		variant.SizeID,
		variant.Stock,
		variant.LowStockThreshold,
		variant.Price,
		variant.DiscountPrice,
		variant.SKU,
		variant.IsActive,
		variant.CreatedAt,
		variant.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}

	return nil
}

// UpdateVariant updates a variant's stock, pricing and active flag
func (r *productRepository) UpdateVariant(ctx context.Context, variant *domain.Variant) error {
	query := `
		UPDATE product_variants
		SET stock = $2, low_stock_threshold = $3, price = $4::numeric,
		    discount_price = NULLIF($5, '')::numeric, sku = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		variant.ID,
		variant.Stock,
		variant.LowStockThreshold,
		variant.Price,
		variant.DiscountPrice,
		variant.SKU,
		variant.IsActive,
		variant.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrVariantNotFound
	}

	return nil
}

// AddImage appends an image to the product's gallery
func (r *productRepository) AddImage(ctx context.Context, image *domain.Image) error {
	query := `
		INSERT INTO product_images (id, product_id, url, position)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, image.ID, image.ProductID, image.URL, image.Position)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}

	return nil
}

// List retrieves products with optional brand filtering, pagination, and
// sorting. Variants and images are not loaded for list views.
func (r *productRepository) List(ctx context.Context, brandID *uuid.UUID, page, pageSize int, sortBy string, sortOrder SortOrder) ([]*domain.Product, int, error) {
	// Validate sort field to prevent SQL injection
	validSortFields := map[string]bool{
		"name":       true,
		"title":      true,
		"created_at": true,
		"status":     true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at" // Default sort field
	}

	// Validate sort order
	if sortOrder != SortOrderAsc && sortOrder != SortOrderDesc {
		sortOrder = SortOrderDesc // Default sort order
	}

	// Build the WHERE clause
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if brandID != nil {
		whereClause = fmt.Sprintf("WHERE p.brand_id = $%d", argIndex)
		args = append(args, *brandID)
		argIndex++
	}

	// Count total products
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", whereClause)
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Calculate offset
	offset := (page - 1) * pageSize

	// Build the main query with sorting and pagination
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.title, p.description, p.brand_id, COALESCE(b.name, ''),
		       p.status, p.category, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		%s
		ORDER BY p.%s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortBy, sortOrder, argIndex, argIndex+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProductRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Search searches for products by name, title or description with pagination
func (r *productRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	// If query is empty, return all products
	if strings.TrimSpace(query) == "" {
		return r.List(ctx, nil, page, pageSize, "created_at", SortOrderDesc)
	}

	// Use ILIKE for case-insensitive search
	searchPattern := "%" + query + "%"

	// Count total matching products
	countQuery := `
		SELECT COUNT(*)
		FROM products
		WHERE name ILIKE $1 OR title ILIKE $1 OR description ILIKE $1
	`
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, searchPattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	// Calculate offset
	offset := (page - 1) * pageSize

	// Search products
	searchQuery := `
		SELECT p.id, p.name, p.title, p.description, p.brand_id, COALESCE(b.name, ''),
		       p.status, p.category, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.name ILIKE $1 OR p.title ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, searchQuery, searchPattern, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products, err := scanProductRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func scanProductRows(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Title,
			&product.Description,
			&product.BrandID,
			&product.BrandName,
			&product.Status,
			&product.Category,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
