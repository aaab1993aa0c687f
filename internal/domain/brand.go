package domain

import (
	"time"

	"github.com/google/uuid"
)

// Brand status values.
const (
	BrandStatusPending  = "pending"
	BrandStatusApproved = "approved"
	BrandStatusDisabled = "disabled"
)

// Brand represents a seller onboarded onto the marketplace.
type Brand struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	LogoURL     string    `json:"logo_url" db:"logo_url"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
