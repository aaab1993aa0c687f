package transport

import (
	"errors"
	"net/http"

	"modamart/internal/collection"
	"modamart/internal/domain"
	"modamart/internal/middleware"
	"modamart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddCartItemRequest identifies the variant the shopper is adding
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	VariantID string `json:"variant_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest sets a new quantity for a cart entry
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResponse wraps the cart contents. Persisted is false when the
// mutation survived only in memory; the contents are still authoritative
// for this session.
type CartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Badge     int               `json:"badge"`
	Persisted bool              `json:"persisted"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes. ownerMiddleware resolves
// the collection owner (authenticated user or anonymous session).
func (h *CartHandler) RegisterRoutes(r chi.Router, ownerMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(ownerMiddleware)
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{variantID}", h.UpdateQuantity)
		r.Delete("/items/{productID}/{variantID}", h.RemoveItem)
		r.Delete("/", h.Clear)
	})
}

func (h *CartHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middleware.GetOwner(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing session identifier")
	}
	return owner, ok
}

// respond writes the cart payload, downgrading persist failures to a
// successful response with persisted=false.
func (h *CartHandler) respond(w http.ResponseWriter, status int, owner string, items []domain.CartItem, err error) {
	persisted := err == nil
	if err != nil && !errors.Is(err, collection.ErrPersistFailed) {
		h.logger.Error("Cart operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "cart operation failed")
		return
	}
	if err != nil {
		h.logger.Warn("Cart persisted in memory only", zap.Error(err), zap.String("owner", owner))
	}

	badge := 0
	for _, it := range items {
		badge += it.Quantity
	}

	middleware.RespondWithJSON(w, status, CartResponse{
		Items:     items,
		Badge:     badge,
		Persisted: persisted,
	})
}

// GetCart returns the owner's cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	items := h.cartService.Items(r.Context(), owner)
	h.respond(w, http.StatusOK, owner, items, nil)
}

// AddItem adds a variant to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid variant ID")
		return
	}

	items, err := h.cartService.Add(r.Context(), owner, service.AddCartItemInput{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVariantUnavailable):
			middleware.RespondWithError(w, http.StatusConflict, "variant is unavailable")
			return
		case errors.Is(err, service.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
	}

	h.respond(w, http.StatusOK, owner, items, err)
}

// UpdateQuantity sets the quantity for a variant entry; zero removes it
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid variant ID")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.cartService.UpdateQuantity(r.Context(), owner, variantID, req.Quantity)
	h.respond(w, http.StatusOK, owner, items, err)
}

// RemoveItem removes a (product, variant) entry
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid variant ID")
		return
	}

	items, err := h.cartService.Remove(r.Context(), owner, productID, variantID)
	h.respond(w, http.StatusOK, owner, items, err)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	err := h.cartService.Clear(r.Context(), owner)
	h.respond(w, http.StatusOK, owner, []domain.CartItem{}, err)
}
