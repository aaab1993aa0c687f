package transport

import (
	"net/http"

	"modamart/internal/middleware"
	"modamart/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateTaxonomyEntryRequest names a new color or size
type CreateTaxonomyEntryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// TaxonomyHandler handles HTTP requests for color and size vocabularies
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
	logger          *zap.Logger
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService service.TaxonomyService, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
		logger:          logger,
	}
}

// RegisterRoutes registers all taxonomy routes
func (h *TaxonomyHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/taxonomy", func(r chi.Router) {
		// Public routes
		r.Get("/colors", h.ListColors)
		r.Get("/sizes", h.ListSizes)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/colors", h.CreateColor)
			r.Post("/sizes", h.CreateSize)
		})
	})
}

// ListColors returns the color vocabulary
func (h *TaxonomyHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.taxonomyService.ListColors(r.Context())
	if err != nil {
		h.logger.Error("Failed to list colors", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list colors")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, colors)
}

// ListSizes returns the size vocabulary
func (h *TaxonomyHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.taxonomyService.ListSizes(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sizes", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sizes")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sizes)
}

// CreateColor adds a color to the vocabulary
func (h *TaxonomyHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxonomyEntryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	color, err := h.taxonomyService.CreateColor(r.Context(), req.Name)
	if err != nil {
		if err == service.ErrColorAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "color already exists")
			return
		}
		h.logger.Error("Failed to create color", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create color")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, color)
}

// CreateSize adds a size to the vocabulary
func (h *TaxonomyHandler) CreateSize(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxonomyEntryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	size, err := h.taxonomyService.CreateSize(r.Context(), req.Name)
	if err != nil {
		if err == service.ErrSizeAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "size already exists")
			return
		}
		h.logger.Error("Failed to create size", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create size")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, size)
}
