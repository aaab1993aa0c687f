package transport

import (
	"net/http"
	"strconv"

	"modamart/internal/domain"
	"modamart/internal/middleware"
	"modamart/internal/repository"
	"modamart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest is the admin payload for a new product
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Description string `json:"description"`
	BrandID     string `json:"brand_id" validate:"required,uuid"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
	Category    string `json:"category" validate:"omitempty,max=255"`
}

// CreateVariantRequest is the admin payload for a new variant
type CreateVariantRequest struct {
	ColorID           string `json:"color_id" validate:"required,uuid"`
	SizeID            string `json:"size_id" validate:"required,uuid"`
	Stock             int    `json:"stock" validate:"gte=0"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
	Price             string `json:"price" validate:"required,price"`
	DiscountPrice     string `json:"discount_price" validate:"price"`
	SKU               string `json:"sku" validate:"max=100"`
	IsActive          *bool  `json:"is_active"`
}

// AddImageRequest is the admin payload for a gallery image
type AddImageRequest struct {
	URL      string `json:"url" validate:"required,url,max=500"`
	Position int    `json:"position" validate:"gte=0"`
}

// ProductListResponse wraps a paginated product listing
type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public storefront routes
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.GetProduct)
		r.Get("/{id}/view", h.GetProductView)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/variants", h.CreateVariant)
			r.Put("/{id}/variants/{variantID}", h.UpdateVariant)
			r.Post("/{id}/images", h.AddImage)
		})
	})
}

// List handles paginated product listing with optional brand filter
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)

	var brandID *uuid.UUID
	if raw := r.URL.Query().Get("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
			return
		}
		brandID = &id
	}

	sortBy := r.URL.Query().Get("sort_by")
	sortOrder := repository.SortOrder(r.URL.Query().Get("sort_order"))

	products, total, err := h.catalogService.ListProducts(r.Context(), brandID, page, pageSize, sortBy, sortOrder)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Search handles product text search
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)
	query := r.URL.Query().Get("q")

	products, total, err := h.catalogService.SearchProducts(r.Context(), query, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to search products", zap.Error(err), zap.String("query", query))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetProduct returns the raw product aggregate
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		if err == service.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to fetch product", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// GetProductView returns the resolved product page payload for the
// shopper's current selection, passed as query parameters.
func (h *ProductHandler) GetProductView(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	req := service.ViewRequest{}
	q := r.URL.Query()
	if raw := q.Get("color_id"); raw != "" {
		if req.ColorID, err = uuid.Parse(raw); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid color ID")
			return
		}
	}
	if raw := q.Get("size_id"); raw != "" {
		if req.SizeID, err = uuid.Parse(raw); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid size ID")
			return
		}
	}
	if raw := q.Get("quantity"); raw != "" {
		if req.Quantity, err = strconv.Atoi(raw); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid quantity")
			return
		}
	}
	if raw := q.Get("image_index"); raw != "" {
		if req.ImageIndex, err = strconv.Atoi(raw); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid image index")
			return
		}
	}

	view, err := h.catalogService.GetProductView(r.Context(), id, req)
	if err != nil {
		if err == service.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to build product view", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// Create handles admin product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		BrandID:     brandID,
		Status:      req.Status,
		Category:    req.Category,
	}

	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		if err == service.ErrCategoryTooDeep {
			middleware.RespondWithError(w, http.StatusBadRequest, "category path exceeds four levels")
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles admin product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		BrandID:     brandID,
		Status:      req.Status,
		Category:    req.Category,
	}

	if err := h.catalogService.UpdateProduct(r.Context(), product); err != nil {
		switch err {
		case service.ErrCategoryTooDeep:
			middleware.RespondWithError(w, http.StatusBadRequest, "category path exceeds four levels")
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		default:
			h.logger.Error("Failed to update product", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles admin product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// CreateVariant handles admin variant creation
func (h *ProductHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req CreateVariantRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	colorID, err := uuid.Parse(req.ColorID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid color ID")
		return
	}
	sizeID, err := uuid.Parse(req.SizeID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid size ID")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	variant := &domain.Variant{
		ProductID:         productID,
		ColorID:           colorID,
		SizeID:            sizeID,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Price:             req.Price,
		DiscountPrice:     req.DiscountPrice,
		SKU:               req.SKU,
		IsActive:          isActive,
	}

	if err := h.catalogService.CreateVariant(r.Context(), variant); err != nil {
		h.logger.Error("Failed to create variant", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create variant")
		return
	}

	h.logger.Info("Variant created",
		zap.String("product_id", productID.String()),
		zap.String("variant_id", variant.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, variant)
}

// UpdateVariant handles admin stock and pricing changes
func (h *ProductHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid variant ID")
		return
	}

	var req CreateVariantRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	colorID, err := uuid.Parse(req.ColorID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid color ID")
		return
	}
	sizeID, err := uuid.Parse(req.SizeID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid size ID")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	variant := &domain.Variant{
		ID:                variantID,
		ProductID:         productID,
		ColorID:           colorID,
		SizeID:            sizeID,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Price:             req.Price,
		DiscountPrice:     req.DiscountPrice,
		SKU:               req.SKU,
		IsActive:          isActive,
	}

	if err := h.catalogService.UpdateVariant(r.Context(), variant); err != nil {
		if err == repository.ErrVariantNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "variant not found")
			return
		}
		h.logger.Error("Failed to update variant", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update variant")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, variant)
}

// AddImage handles admin gallery image upload registration
func (h *ProductHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req AddImageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	image := &domain.Image{
		ProductID: productID,
		URL:       req.URL,
		Position:  req.Position,
	}

	if err := h.catalogService.AddImage(r.Context(), image); err != nil {
		h.logger.Error("Failed to add image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add image")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, image)
}

// paginationParams extracts page/page_size with sane bounds
func paginationParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
