package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is an identity record for a person. Each canonical key is unique
// across profiles when present; Data carries every non-key field submitted
// by callers.
type Profile struct {
	ID           uuid.UUID      `json:"id"`
	Email        *string        `json:"email,omitempty"`
	LinkedInSlug *string        `json:"linkedin_slug,omitempty"`
	LinkedInURL  *string        `json:"linkedin_url,omitempty"`
	PhoneE164    *string        `json:"phone_e164,omitempty"`
	Data         map[string]any `json:"data"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// HasKey reports whether at least one canonical key is set.
func (p *Profile) HasKey() bool {
	return p.Email != nil || p.LinkedInSlug != nil || p.LinkedInURL != nil || p.PhoneE164 != nil
}
