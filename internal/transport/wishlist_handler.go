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

// AddWishlistItemRequest identifies the product being saved
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// WishlistResponse wraps the wishlist contents
type WishlistResponse struct {
	Items     []domain.WishlistItem `json:"items"`
	Badge     int                   `json:"badge"`
	Persisted bool                  `json:"persisted"`
}

// WishlistHandler handles HTTP requests for wishlist operations
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router, ownerMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(ownerMiddleware)
		r.Get("/", h.GetWishlist)
		r.Post("/items", h.AddItem)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Delete("/", h.Clear)
	})
}

func (h *WishlistHandler) respond(w http.ResponseWriter, owner string, items []domain.WishlistItem, err error) {
	persisted := err == nil
	if err != nil && !errors.Is(err, collection.ErrPersistFailed) {
		h.logger.Error("Wishlist operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "wishlist operation failed")
		return
	}
	if err != nil {
		h.logger.Warn("Wishlist persisted in memory only", zap.Error(err), zap.String("owner", owner))
	}

	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{
		Items:     items,
		Badge:     len(items),
		Persisted: persisted,
	})
}

// GetWishlist returns the owner's saved products
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetOwner(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing session identifier")
		return
	}

	items := h.wishlistService.Items(r.Context(), owner)
	h.respond(w, owner, items, nil)
}

// AddItem saves a product to the wishlist
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetOwner(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing session identifier")
		return
	}

	var req AddWishlistItemRequest
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

	items, err := h.wishlistService.Add(r.Context(), owner, productID)
	if err != nil && errors.Is(err, service.ErrProductNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.respond(w, owner, items, err)
}

// RemoveItem drops a saved product
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetOwner(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing session identifier")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	items, err := h.wishlistService.Remove(r.Context(), owner, productID)
	h.respond(w, owner, items, err)
}

// Clear empties the wishlist
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.GetOwner(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing session identifier")
		return
	}

	err := h.wishlistService.Clear(r.Context(), owner)
	h.respond(w, owner, []domain.WishlistItem{}, err)
}
