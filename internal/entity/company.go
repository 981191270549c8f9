package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is an identity record for an organisation, keyed by canonical
// domain and/or LinkedIn slug.
type Company struct {
	ID           uuid.UUID      `json:"id"`
	Domain       *string        `json:"domain,omitempty"`
	LinkedInSlug *string        `json:"linkedin_slug,omitempty"`
	Data         map[string]any `json:"data"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// HasKey reports whether at least one canonical key is set.
func (c *Company) HasKey() bool {
	return c.Domain != nil || c.LinkedInSlug != nil
}
