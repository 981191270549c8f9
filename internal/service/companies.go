package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/octobees/identity-cache/api/internal/dto"
	"github.com/octobees/identity-cache/api/internal/entity"
	"github.com/octobees/identity-cache/api/internal/metrics"
	"github.com/octobees/identity-cache/api/internal/normalize"
	"github.com/octobees/identity-cache/api/internal/repository"
	"github.com/octobees/identity-cache/api/internal/resolve"
)

// CompaniesService orchestrates normalization, resolution and persistence
// for organisation records.
type CompaniesService struct {
	repo    repository.CompaniesRepository
	metrics *metrics.Metrics
}

// NewCompaniesService creates the service.
func NewCompaniesService(repo repository.CompaniesRepository, m *metrics.Metrics) *CompaniesService {
	return &CompaniesService{repo: repo, metrics: m}
}

type companyKeys struct {
	domain       string
	linkedInSlug string
	linkedInURL  string
}

func (k companyKeys) empty() bool {
	return k.domain == "" && k.linkedInSlug == ""
}

// candidates returns lookup candidates in priority order: a domain is a
// stronger organisation identifier than a social slug.
func (k companyKeys) candidates() []resolve.Candidate {
	return []resolve.Candidate{
		{Key: repository.CompanyKeyDomain, Value: k.domain},
		{Key: repository.CompanyKeyLinkedInSlug, Value: k.linkedInSlug},
	}
}

func deriveCompanyKeys(req dto.CompanyUpsertRequest) companyKeys {
	var keys companyKeys
	if req.Domain != "" {
		if domain, ok := normalize.Domain(req.Domain); ok {
			keys.domain = domain
		}
	}
	if req.LinkedInURL != "" {
		if slug, ok := normalize.LinkedIn(req.LinkedInURL); ok {
			keys.linkedInSlug = slug
		}
		keys.linkedInURL = strings.TrimSpace(req.LinkedInURL)
	}
	return keys
}

// Upsert resolves the request against existing companies and either
// back-fills the match or creates a new record.
func (s *CompaniesService) Upsert(ctx context.Context, req dto.CompanyUpsertRequest) (UpsertResult, *entity.Company, error) {
	keys := deriveCompanyKeys(req)
	if keys.empty() {
		return UpsertResult{}, nil, ErrNoIdentifier
	}

	incoming := MergeData(req.Extra, nil)
	if keys.linkedInURL != "" {
		incoming["linkedin_url"] = keys.linkedInURL
	}

	existing, resolvedBy, err := resolve.FirstMatch(ctx, keys.candidates(), s.findByKey)
	if errors.Is(err, resolve.ErrNoMatch) {
		return s.create(ctx, keys, incoming)
	}
	if err != nil {
		return UpsertResult{}, nil, err
	}

	update := repository.CompanyUpdate{}
	if keys.domain != "" && existing.Domain == nil {
		update.Domain = &keys.domain
	}
	if keys.linkedInSlug != "" && existing.LinkedInSlug == nil {
		update.LinkedInSlug = &keys.linkedInSlug
	}

	merged := MergeData(existing.Data, incoming)
	if !reflect.DeepEqual(merged, existing.Data) {
		update.Data = merged
	}

	if !update.IsEmpty() {
		if err := s.repo.Update(ctx, existing.ID, update); err != nil {
			return UpsertResult{}, nil, err
		}
	}

	saved := &entity.Company{
		ID:           existing.ID,
		Domain:       firstNonNil(update.Domain, existing.Domain),
		LinkedInSlug: firstNonNil(update.LinkedInSlug, existing.LinkedInSlug),
		Data:         merged,
	}

	s.metrics.ObserveResolution("company", resolvedBy)
	return UpsertResult{ID: existing.ID, ResolvedBy: resolvedBy}, saved, nil
}

func (s *CompaniesService) create(ctx context.Context, keys companyKeys, data map[string]any) (UpsertResult, *entity.Company, error) {
	company := &entity.Company{
		Domain:       ptrOrNil(keys.domain),
		LinkedInSlug: ptrOrNil(keys.linkedInSlug),
		Data:         data,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return UpsertResult{}, nil, err
	}

	s.metrics.ObserveResolution("company", ResolvedByNew)
	return UpsertResult{ID: company.ID, ResolvedBy: ResolvedByNew}, company, nil
}

// Find looks a company up by whichever canonical keys the query yields. A
// nil company with nil error means nothing matched.
func (s *CompaniesService) Find(ctx context.Context, query dto.CompanyQuery) (*entity.Company, map[string]any, error) {
	var candidates []resolve.Candidate
	criteria := map[string]any{}

	if query.Domain != "" {
		if domain, ok := normalize.Domain(query.Domain); ok {
			candidates = append(candidates, resolve.Candidate{Key: repository.CompanyKeyDomain, Value: domain})
			criteria[repository.CompanyKeyDomain] = domain
		}
	}
	if query.LinkedIn != "" {
		if slug, ok := normalize.LinkedIn(query.LinkedIn); ok {
			candidates = append(candidates, resolve.Candidate{Key: repository.CompanyKeyLinkedInSlug, Value: slug})
			criteria[repository.CompanyKeyLinkedInSlug] = slug
		}
	}

	company, _, err := resolve.FirstMatch(ctx, candidates, s.findByKey)
	if errors.Is(err, resolve.ErrNoMatch) {
		return nil, criteria, nil
	}
	if err != nil {
		return nil, criteria, err
	}
	return company, criteria, nil
}

func (s *CompaniesService) findByKey(ctx context.Context, key, value string) (*entity.Company, bool, error) {
	company, err := s.repo.FindByKey(ctx, key, value)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return company, true, nil
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
