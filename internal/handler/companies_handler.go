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

// CompaniesHandler exposes the company upsert and lookup endpoints.
type CompaniesHandler struct {
	service *service.CompaniesService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(service *service.CompaniesService) *CompaniesHandler {
	return &CompaniesHandler{service: service}
}

// Upsert handles POST /companies.
func (h *CompaniesHandler) Upsert(c echo.Context) error {
	var req dto.CompanyUpsertRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON body")
	}

	result, saved, err := h.service.Upsert(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoIdentifier):
			return Error(c, http.StatusBadRequest, "At least one identifier (domain, linkedin_url) is required.")
		case errors.Is(err, repository.ErrDuplicateKey):
			return Error(c, http.StatusConflict, "identity key was claimed by a concurrent request, please retry")
		default:
			c.Logger().Errorf("company upsert failed: %v", err)
			return Error(c, http.StatusInternalServerError, "Internal Server Error")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"resolved_by": result.ResolvedBy,
		"company_id":  result.ID,
		"saved_data": map[string]any{
			"id":            saved.ID,
			"domain":        saved.Domain,
			"linkedin_slug": saved.LinkedInSlug,
			"data":          saved.Data,
		},
	})
}

// Get handles GET /companies lookups by domain or linkedin.
func (h *CompaniesHandler) Get(c echo.Context) error {
	linkedIn := strings.TrimSpace(c.QueryParam("linkedin"))
	if linkedIn == "" {
		linkedIn = strings.TrimSpace(c.QueryParam("linkedin_url"))
	}
	query := dto.CompanyQuery{
		Domain:   strings.TrimSpace(c.QueryParam("domain")),
		LinkedIn: linkedIn,
	}

	company, criteria, err := h.service.Find(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("company lookup failed: %v", err)
		return Error(c, http.StatusInternalServerError, "Internal Server Error")
	}
	if company == nil {
		return NotFound(c, criteria)
	}

	response := make(map[string]any, len(company.Data)+5)
	for k, v := range company.Data {
		response[k] = v
	}
	response["result"] = 1
	response["id"] = company.ID
	response["domain"] = company.Domain
	response["linkedin_slug"] = company.LinkedInSlug
	response["updated_at"] = company.UpdatedAt

	return c.JSON(http.StatusOK, response)
}
