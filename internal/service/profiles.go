package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/identity-cache/api/internal/dto"
	"github.com/octobees/identity-cache/api/internal/entity"
	"github.com/octobees/identity-cache/api/internal/metrics"
	"github.com/octobees/identity-cache/api/internal/normalize"
	"github.com/octobees/identity-cache/api/internal/repository"
	"github.com/octobees/identity-cache/api/internal/resolve"
)

// ErrNoIdentifier rejects requests carrying no usable canonical key.
var ErrNoIdentifier = errors.New("at least one identity key is required")

// ResolvedByNew marks records created by an upsert rather than matched.
const ResolvedByNew = "new"

// UpsertResult reports the outcome of an upsert: the record id and the key
// that resolved the match (ResolvedByNew on creation).
type UpsertResult struct {
	ID         uuid.UUID
	ResolvedBy string
}

// ProfilesService orchestrates normalization, resolution and persistence for
// person records.
type ProfilesService struct {
	repo          repository.ProfilesRepository
	defaultRegion string
	metrics       *metrics.Metrics
}

// NewProfilesService creates the service. defaultRegion is the calling-code
// context assumed for phone numbers without one.
func NewProfilesService(repo repository.ProfilesRepository, defaultRegion string, m *metrics.Metrics) *ProfilesService {
	return &ProfilesService{repo: repo, defaultRegion: defaultRegion, metrics: m}
}

// profileKeys holds every canonical key derivable from one request.
type profileKeys struct {
	email         string
	linkedInSlug  string
	linkedInURL   string
	phoneE164     string
	phoneNational string
}

func (k profileKeys) empty() bool {
	return k.email == "" && k.linkedInSlug == "" && k.phoneE164 == ""
}

// candidates returns lookup candidates in resolution priority order: email
// is the least ambiguous identifier, phone the most.
func (k profileKeys) candidates() []resolve.Candidate {
	return []resolve.Candidate{
		{Key: repository.ProfileKeyEmail, Value: k.email},
		{Key: repository.ProfileKeyLinkedInURL, Value: k.linkedInURL},
		{Key: repository.ProfileKeyLinkedInSlug, Value: k.linkedInSlug},
		{Key: repository.ProfileKeyPhone, Value: k.phoneE164},
	}
}

func (s *ProfilesService) deriveKeys(req dto.ProfileUpsertRequest) profileKeys {
	var keys profileKeys

	if req.Email != "" {
		keys.email = normalize.Email(req.Email)
	}
	if linkedIn := req.LinkedInInput(); linkedIn != "" {
		if slug, ok := normalize.LinkedIn(linkedIn); ok {
			keys.linkedInSlug = slug
		}
		keys.linkedInURL = strings.TrimSpace(linkedIn)
	}
	if req.Phone != "" {
		if phone, ok := normalize.ParsePhone(req.Phone, s.defaultRegion); ok {
			keys.phoneE164 = phone.E164
			keys.phoneNational = phone.National
		}
	}
	return keys
}

// Upsert resolves the request against existing profiles and either back-fills
// the match or creates a new record.
func (s *ProfilesService) Upsert(ctx context.Context, req dto.ProfileUpsertRequest) (UpsertResult, error) {
	keys := s.deriveKeys(req)
	if keys.empty() {
		return UpsertResult{}, ErrNoIdentifier
	}

	incoming := MergeData(req.Extra, nil)
	if keys.linkedInURL != "" {
		incoming["linkedin_url"] = keys.linkedInURL
	}
	if keys.phoneNational != "" {
		incoming["phone_national"] = keys.phoneNational
	}

	existing, resolvedBy, err := resolve.FirstMatch(ctx, keys.candidates(), s.findByKey)
	if errors.Is(err, resolve.ErrNoMatch) {
		return s.create(ctx, keys, incoming)
	}
	if err != nil {
		return UpsertResult{}, err
	}

	update := repository.ProfileUpdate{}
	if keys.email != "" && existing.Email == nil {
		update.Email = &keys.email
	}
	if keys.linkedInSlug != "" && existing.LinkedInSlug == nil {
		update.LinkedInSlug = &keys.linkedInSlug
	}
	if keys.linkedInURL != "" && existing.LinkedInURL == nil {
		update.LinkedInURL = &keys.linkedInURL
	}
	if keys.phoneE164 != "" && existing.PhoneE164 == nil {
		update.PhoneE164 = &keys.phoneE164
	}

	if merged := MergeData(existing.Data, incoming); !reflect.DeepEqual(merged, existing.Data) {
		update.Data = merged
	}

	if !update.IsEmpty() {
		if err := s.repo.Update(ctx, existing.ID, update); err != nil {
			return UpsertResult{}, err
		}
	}

	s.metrics.ObserveResolution("profile", resolvedBy)
	return UpsertResult{ID: existing.ID, ResolvedBy: resolvedBy}, nil
}

func (s *ProfilesService) create(ctx context.Context, keys profileKeys, data map[string]any) (UpsertResult, error) {
	profile := &entity.Profile{
		Email:        ptrOrNil(keys.email),
		LinkedInSlug: ptrOrNil(keys.linkedInSlug),
		LinkedInURL:  ptrOrNil(keys.linkedInURL),
		PhoneE164:    ptrOrNil(keys.phoneE164),
		Data:         data,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return UpsertResult{}, err
	}

	s.metrics.ObserveResolution("profile", ResolvedByNew)
	return UpsertResult{ID: profile.ID, ResolvedBy: ResolvedByNew}, nil
}

// Find looks a profile up by whichever canonical keys the query yields. A
// nil profile with nil error means nothing matched; the returned criteria
// always describe the keys that were attempted.
func (s *ProfilesService) Find(ctx context.Context, query dto.ProfileQuery) (*entity.Profile, map[string]any, error) {
	var candidates []resolve.Candidate
	criteria := map[string]any{}

	if query.Email != "" {
		email := normalize.Email(query.Email)
		candidates = append(candidates, resolve.Candidate{Key: repository.ProfileKeyEmail, Value: email})
		criteria[repository.ProfileKeyEmail] = email
	}
	if linkedIn := strings.TrimSpace(query.LinkedIn); linkedIn != "" {
		// A full URL is probed as stored before falling back to the slug.
		if strings.Contains(linkedIn, "linkedin.com/") {
			candidates = append(candidates, resolve.Candidate{Key: repository.ProfileKeyLinkedInURL, Value: linkedIn})
			criteria[repository.ProfileKeyLinkedInURL] = linkedIn
		}
		if slug, ok := normalize.LinkedIn(linkedIn); ok {
			candidates = append(candidates, resolve.Candidate{Key: repository.ProfileKeyLinkedInSlug, Value: slug})
			criteria[repository.ProfileKeyLinkedInSlug] = slug
		}
	}
	if query.Phone != "" {
		if phone, ok := normalize.ParsePhone(query.Phone, s.defaultRegion); ok {
			candidates = append(candidates, resolve.Candidate{Key: repository.ProfileKeyPhone, Value: phone.E164})
			criteria[repository.ProfileKeyPhone] = phone.E164
		}
	}

	profile, _, err := resolve.FirstMatch(ctx, candidates, s.findByKey)
	if errors.Is(err, resolve.ErrNoMatch) {
		return nil, criteria, nil
	}
	if err != nil {
		return nil, criteria, err
	}
	return profile, criteria, nil
}

func (s *ProfilesService) findByKey(ctx context.Context, key, value string) (*entity.Profile, bool, error) {
	profile, err := s.repo.FindByKey(ctx, key, value)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return profile, true, nil
}

func ptrOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
