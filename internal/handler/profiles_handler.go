package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/identity-cache/api/internal/dto"
	"github.com/octobees/identity-cache/api/internal/repository"
	"github.com/octobees/identity-cache/api/internal/service"
)

// ProfilesHandler exposes the profile upsert and lookup endpoints.
type ProfilesHandler struct {
	service *service.ProfilesService
}

// NewProfilesHandler creates a new handler instance.
func NewProfilesHandler(service *service.ProfilesService) *ProfilesHandler {
	return &ProfilesHandler{service: service}
}

// Upsert handles POST /profiles.
func (h *ProfilesHandler) Upsert(c echo.Context) error {
	var req dto.ProfileUpsertRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON body")
	}

	result, err := h.service.Upsert(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoIdentifier):
			return Error(c, http.StatusBadRequest, "At least one identity key (email, linkedin_url, phone) is required.")
		case errors.Is(err, repository.ErrDuplicateKey):
			return Error(c, http.StatusConflict, "identity key was claimed by a concurrent request, please retry")
		default:
			c.Logger().Errorf("profile upsert failed: %v", err)
			return Error(c, http.StatusInternalServerError, "Internal Server Error")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"resolved_by": result.ResolvedBy,
		"profile_id":  result.ID,
	})
}

// Get handles GET /profiles lookups by email, linkedin or phone.
func (h *ProfilesHandler) Get(c echo.Context) error {
	query := dto.ProfileQuery{
		Email:    strings.TrimSpace(c.QueryParam("email")),
		LinkedIn: strings.TrimSpace(c.QueryParam("linkedin")),
		Phone:    strings.TrimSpace(c.QueryParam("phone")),
	}

	profile, criteria, err := h.service.Find(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("profile lookup failed: %v", err)
		return Error(c, http.StatusInternalServerError, "Internal Server Error")
	}
	if profile == nil {
		return NotFound(c, criteria)
	}

	// Flatten: data fields first so canonical fields always win.
	response := make(map[string]any, len(profile.Data)+5)
	for k, v := range profile.Data {
		response[k] = v
	}
	response["id"] = profile.ID
	response["email"] = profile.Email
	response["linkedin_slug"] = profile.LinkedInSlug
	response["phone"] = profile.PhoneE164
	response["updated_at"] = profile.UpdatedAt

	return c.JSON(http.StatusOK, response)
}
