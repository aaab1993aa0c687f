package transport

import (
	"net/http"

	"modamart/internal/middleware"
	"modamart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OnboardBrandRequest is the payload for registering a brand
type OnboardBrandRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=2000"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url,max=500"`
}

// BrandStatusRequest moves a brand through moderation
type BrandStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved disabled"`
}

// BrandHandler handles HTTP requests for brand operations
type BrandHandler struct {
	brandService service.BrandService
	logger       *zap.Logger
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService service.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

// RegisterRoutes registers all brand routes
func (h *BrandHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/brands", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/slug/{slug}", h.GetBySlug)
		r.Get("/{id}", h.GetByID)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Onboard)
			r.Put("/{id}", h.UpdateProfile)
			r.Put("/{id}/status", h.SetStatus)
		})
	})
}

// List returns brands, optionally filtered by ?status=
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	brands, err := h.brandService.List(r.Context(), status)
	if err != nil {
		if err == service.ErrInvalidStatus {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand status")
			return
		}
		h.logger.Error("Failed to list brands", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

// GetByID returns one brand
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	brand, err := h.brandService.GetByID(r.Context(), id)
	if err != nil {
		if err == service.ErrBrandNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
			return
		}
		h.logger.Error("Failed to get brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

// GetBySlug returns one brand by URL slug
func (h *BrandHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	brand, err := h.brandService.GetBySlug(r.Context(), slug)
	if err != nil {
		if err == service.ErrBrandNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
			return
		}
		h.logger.Error("Failed to get brand by slug", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

// Onboard registers a new brand in pending state
func (h *BrandHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardBrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.brandService.Onboard(r.Context(), req.Name, req.Description, req.LogoURL)
	if err != nil {
		if err == service.ErrDuplicateBrand {
			middleware.RespondWithError(w, http.StatusConflict, "brand already exists")
			return
		}
		h.logger.Error("Failed to onboard brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to onboard brand")
		return
	}

	h.logger.Info("Brand onboarded",
		zap.String("brand_id", brand.ID.String()),
		zap.String("slug", brand.Slug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

// UpdateProfile changes a brand's public profile
func (h *BrandHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	var req OnboardBrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.brandService.UpdateProfile(r.Context(), id, req.Name, req.Description, req.LogoURL)
	if err != nil {
		switch err {
		case service.ErrBrandNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
		case service.ErrDuplicateBrand:
			middleware.RespondWithError(w, http.StatusConflict, "brand already exists")
		default:
			h.logger.Error("Failed to update brand", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update brand")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

// SetStatus moves a brand through the moderation lifecycle
func (h *BrandHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	var req BrandStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.brandService.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		switch err {
		case service.ErrBrandNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
		case service.ErrInvalidStatus:
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand status")
		default:
			h.logger.Error("Failed to set brand status", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set brand status")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}
