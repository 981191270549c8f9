package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/identity-cache/api/internal/entity"
	"github.com/octobees/identity-cache/api/internal/repository"
	"github.com/octobees/identity-cache/api/internal/service"
)

type memProfilesRepo struct {
	profiles  map[uuid.UUID]*entity.Profile
	createErr error
}

func newMemProfilesRepo() *memProfilesRepo {
	return &memProfilesRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (m *memProfilesRepo) FindByKey(_ context.Context, key, value string) (*entity.Profile, error) {
	for _, p := range m.profiles {
		var stored *string
		switch key {
		case repository.ProfileKeyEmail:
			stored = p.Email
		case repository.ProfileKeyLinkedInURL:
			stored = p.LinkedInURL
		case repository.ProfileKeyLinkedInSlug:
			stored = p.LinkedInSlug
		case repository.ProfileKeyPhone:
			stored = p.PhoneE164
		}
		if stored != nil && *stored == value {
			return p, nil
		}
	}
	return nil, repository.ErrProfileNotFound
}

func (m *memProfilesRepo) Create(_ context.Context, profile *entity.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	profile.ID = uuid.New()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *memProfilesRepo) Update(_ context.Context, id uuid.UUID, update repository.ProfileUpdate) error {
	p, ok := m.profiles[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	if update.Email != nil {
		p.Email = update.Email
	}
	if update.LinkedInSlug != nil {
		p.LinkedInSlug = update.LinkedInSlug
	}
	if update.LinkedInURL != nil {
		p.LinkedInURL = update.LinkedInURL
	}
	if update.PhoneE164 != nil {
		p.PhoneE164 = update.PhoneE164
	}
	if update.Data != nil {
		p.Data = update.Data
	}
	return nil
}

func newProfilesHandler(repo repository.ProfilesRepository) *ProfilesHandler {
	return NewProfilesHandler(service.NewProfilesService(repo, "MX", nil))
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func getPath(t *testing.T, h echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestProfilesUpsertCreatesThenResolves(t *testing.T) {
	handler := newProfilesHandler(newMemProfilesRepo())
	body := `{"email":" Ana@Empresa.com ","phone":"(55) 1234-5678","name":"Ana"}`

	rec := postJSON(t, handler.Upsert, "/profiles", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var first map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if first["status"] != "ok" || first["resolved_by"] != "new" {
		t.Fatalf("unexpected first response: %+v", first)
	}

	rec = postJSON(t, handler.Upsert, "/profiles", body)
	var second map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if second["resolved_by"] != "email" {
		t.Fatalf("expected email resolution, got %+v", second)
	}
	if second["profile_id"] != first["profile_id"] {
		t.Fatalf("profile id changed between identical upserts")
	}
}

func TestProfilesUpsertRejectsMissingIdentifiers(t *testing.T) {
	handler := newProfilesHandler(newMemProfilesRepo())

	rec := postJSON(t, handler.Upsert, "/profiles", `{"name":"Ana"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected error shape, got %s", rec.Body.String())
	}
}

func TestProfilesUpsertMapsConflictTo409(t *testing.T) {
	repo := newMemProfilesRepo()
	repo.createErr = repository.ErrDuplicateKey
	handler := newProfilesHandler(repo)

	rec := postJSON(t, handler.Upsert, "/profiles", `{"email":"race@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestProfilesUpsertRejectsInvalidJSON(t *testing.T) {
	handler := newProfilesHandler(newMemProfilesRepo())

	rec := postJSON(t, handler.Upsert, "/profiles", `{"email":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProfilesGetFlattensRecord(t *testing.T) {
	repo := newMemProfilesRepo()
	handler := newProfilesHandler(repo)

	postJSON(t, handler.Upsert, "/profiles", `{"email":"ana@empresa.com","name":"Ana","role":"cto"}`)

	rec := getPath(t, handler.Get, "/profiles?email=Ana@Empresa.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["email"] != "ana@empresa.com" || payload["name"] != "Ana" || payload["role"] != "cto" {
		t.Fatalf("record not flattened: %+v", payload)
	}
	if _, ok := payload["id"]; !ok {
		t.Fatalf("id missing from response: %+v", payload)
	}
}

func TestProfilesGetMissReturnsSearchCriteria(t *testing.T) {
	handler := newProfilesHandler(newMemProfilesRepo())

	rec := getPath(t, handler.Get, "/profiles?email=nobody@example.com&linkedin=linkedin.com/in/ghost")
	if rec.Code != http.StatusOK {
		t.Fatalf("miss should be 200, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["result"] != nil {
		t.Fatalf("expected null result, got %+v", payload)
	}
	if payload["message"] != "No records found" {
		t.Fatalf("unexpected message: %+v", payload)
	}
	criteria, ok := payload["search_criteria"].(map[string]any)
	if !ok {
		t.Fatalf("missing search criteria: %+v", payload)
	}
	if criteria["email"] != "nobody@example.com" || criteria["linkedin_slug"] != "ghost" {
		t.Fatalf("unexpected criteria: %+v", criteria)
	}
}
