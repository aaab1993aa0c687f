package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"modamart/internal/catalog"
	"modamart/internal/domain"
	"modamart/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrCategoryTooDeep = errors.New("category path exceeds four levels")
)

// ViewRequest carries the shopper's current choices on the product page.
// Zero values mean "use the defaults": first color, its first size,
// quantity one, first image.
type ViewRequest struct {
	ColorID    uuid.UUID
	SizeID     uuid.UUID
	Quantity   int
	ImageIndex int
}

// PriceView is the resolved display price for the selected variant.
type PriceView struct {
	Current         float64 `json:"current"`
	Original        float64 `json:"original,omitempty"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
}

// SelectionView mirrors the selection state the page renders.
type SelectionView struct {
	ColorID    uuid.UUID `json:"color_id"`
	SizeID     uuid.UUID `json:"size_id"`
	Quantity   int       `json:"quantity"`
	ImageIndex int       `json:"image_index"`
}

// ProductView is everything the product page needs in one payload: the
// aggregate, the derived option lists for the current selection, and the
// resolved price and stock for the selected variant.
type ProductView struct {
	Product      *domain.Product     `json:"product"`
	Colors       []domain.Color      `json:"colors"`
	Sizes        []domain.Size       `json:"sizes"`
	Images       []domain.Image      `json:"images"`
	Selection    SelectionView       `json:"selection"`
	Price        PriceView           `json:"price"`
	Stock        catalog.StockStatus `json:"stock"`
	CanAddToCart bool                `json:"can_add_to_cart"`
}

// CatalogService exposes the storefront catalog reads plus the admin
// writes behind them.
type CatalogService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductView(ctx context.Context, id uuid.UUID, req ViewRequest) (*ProductView, error)
	ListProducts(ctx context.Context, brandID *uuid.UUID, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateVariant(ctx context.Context, variant *domain.Variant) error
	UpdateVariant(ctx context.Context, variant *domain.Variant) error
	AddImage(ctx context.Context, image *domain.Image) error
}

type catalogService struct {
	productRepo    repository.ProductRepository
	brandRepo      repository.BrandRepository
	imagesPerColor int
}

// NewCatalogService creates a new instance of CatalogService.
// imagesPerColor controls how many gallery images each color block gets
// (zero picks the default).
func NewCatalogService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	imagesPerColor int,
) CatalogService {
	if imagesPerColor <= 0 {
		imagesPerColor = catalog.DefaultImagesPerColor
	}
	return &catalogService{
		productRepo:    productRepo,
		brandRepo:      brandRepo,
		imagesPerColor: imagesPerColor,
	}
}

// GetProduct fetches the product aggregate. Incomplete aggregates are
// repaired with narrower follow-up reads: a missing brand name is
// recovered through the brand lookup, missing variants through the
// variant listing.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if product.BrandName == "" && product.BrandID != uuid.Nil {
		brand, err := s.brandRepo.FindByID(ctx, product.BrandID)
		if err == nil {
			product.BrandName = brand.Name
		} else if err != repository.ErrBrandNotFound {
			return nil, fmt.Errorf("failed to recover brand: %w", err)
		}
	}

	if len(product.Variants) == 0 {
		variants, err := s.productRepo.ListVariants(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to recover variants: %w", err)
		}
		product.Variants = variants
	}

	return product, nil
}

// GetProductView resolves the page payload for the requested selection.
func (s *catalogService) GetProductView(ctx context.Context, id uuid.UUID, req ViewRequest) (*ProductView, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	index := catalog.NewVariantIndex(
		product.Variants,
		product.Images,
		catalog.WithImagesPerColor(s.imagesPerColor),
	)
	selection := catalog.NewSelection(index)

	if req.ColorID != uuid.Nil {
		selection.SelectColor(req.ColorID)
	}
	if req.SizeID != uuid.Nil {
		selection.SelectSize(req.SizeID)
	}
	if req.Quantity > 0 {
		selection.ChangeQuantity(req.Quantity - selection.Quantity)
	}
	if req.ImageIndex > 0 {
		selection.SelectImage(req.ImageIndex)
	}

	view := &ProductView{
		Product:   product,
		Colors:    index.AvailableColors(),
		Sizes:     index.AvailableSizes(selection.ColorID),
		Images:    index.ImagesForColor(selection.ColorID),
		Stock:     catalog.StockUnknown,
		Selection: SelectionView{
			ColorID:    selection.ColorID,
			SizeID:     selection.SizeID,
			Quantity:   selection.Quantity,
			ImageIndex: selection.ImageIndex,
		},
	}

	if variant := selection.Variant(); variant != nil {
		view.Price = PriceView{
			Current:         catalog.CurrentPrice(variant),
			Original:        catalog.OriginalPrice(variant),
			DiscountPercent: catalog.DiscountPercent(variant),
		}
		view.Stock = catalog.StatusOf(variant)
		view.CanAddToCart = selection.CanAddToCart()
	}

	return view, nil
}

// ListProducts delegates to the repository with list-view pagination.
func (s *catalogService) ListProducts(ctx context.Context, brandID *uuid.UUID, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	return s.productRepo.List(ctx, brandID, page, pageSize, sortBy, sortOrder)
}

// SearchProducts delegates to the repository text search.
func (s *catalogService) SearchProducts(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	return s.productRepo.Search(ctx, query, page, pageSize)
}

// CreateProduct validates and stores a new product.
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateCategory(product.Category); err != nil {
		return err
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Status == "" {
		product.Status = domain.ProductStatusDraft
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	return s.productRepo.Create(ctx, product)
}

// UpdateProduct validates and stores changes to a product.
func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateCategory(product.Category); err != nil {
		return err
	}
	product.UpdatedAt = time.Now()
	return s.productRepo.Update(ctx, product)
}

// DeleteProduct removes a product and its variants and images.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// CreateVariant stores a new variant for a product.
func (s *catalogService) CreateVariant(ctx context.Context, variant *domain.Variant) error {
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}
	now := time.Now()
	variant.CreatedAt = now
	variant.UpdatedAt = now
	return s.productRepo.CreateVariant(ctx, variant)
}

// UpdateVariant stores stock and pricing changes for a variant.
func (s *catalogService) UpdateVariant(ctx context.Context, variant *domain.Variant) error {
	variant.UpdatedAt = time.Now()
	return s.productRepo.UpdateVariant(ctx, variant)
}

// AddImage appends a gallery image.
func (s *catalogService) AddImage(ctx context.Context, image *domain.Image) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return s.productRepo.AddImage(ctx, image)
}

// validateCategory enforces the slash-path depth limit.
func validateCategory(category string) error {
	if category == "" {
		return nil
	}
	if len(strings.Split(category, "/")) > 4 {
		return ErrCategoryTooDeep
	}
	return nil
}
