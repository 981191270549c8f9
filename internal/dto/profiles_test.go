package dto

import (
	"encoding/json"
	"testing"
)

func TestProfileUpsertRequestSplitsIdentifiers(t *testing.T) {
	body := `{"email":"ana@empresa.com","linkedin_url":"linkedin.com/in/ana","phone":"+525512345678","name":"Ana","score":42}`

	var req ProfileUpsertRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.Email != "ana@empresa.com" || req.LinkedInURL != "linkedin.com/in/ana" || req.Phone != "+525512345678" {
		t.Fatalf("identifier fields not peeled: %+v", req)
	}
	if _, ok := req.Extra["email"]; ok {
		t.Fatalf("email should be removed from extra: %+v", req.Extra)
	}
	if req.Extra["name"] != "Ana" || req.Extra["score"] != float64(42) {
		t.Fatalf("open fields missing from extra: %+v", req.Extra)
	}
}

func TestProfileUpsertRequestKeepsNonStringIdentifiersInExtra(t *testing.T) {
	var req ProfileUpsertRequest
	if err := json.Unmarshal([]byte(`{"email":123,"phone":"+525512345678"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.Email != "" {
		t.Fatalf("non-string email should not become an identifier: %q", req.Email)
	}
	if req.Extra["email"] != float64(123) {
		t.Fatalf("non-string email should stay in extra: %+v", req.Extra)
	}
}

func TestLinkedInInputPrefersCanonicalField(t *testing.T) {
	req := ProfileUpsertRequest{LinkedInURL: "linkedin.com/in/a", LinkedInProfile: "linkedin.com/in/b"}
	if got := req.LinkedInInput(); got != "linkedin.com/in/a" {
		t.Fatalf("expected linkedin_url to win, got %q", got)
	}

	req = ProfileUpsertRequest{LinkedInProfile: "linkedin.com/in/b"}
	if got := req.LinkedInInput(); got != "linkedin.com/in/b" {
		t.Fatalf("expected alias fallback, got %q", got)
	}
}

func TestCompanyUpsertRequestSplitsIdentifiers(t *testing.T) {
	body := `{"domain":"acme.io","linkedin_url":"linkedin.com/company/acme","name":"Acme"}`

	var req CompanyUpsertRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.Domain != "acme.io" || req.LinkedInURL != "linkedin.com/company/acme" {
		t.Fatalf("identifier fields not peeled: %+v", req)
	}
	if req.Extra["name"] != "Acme" {
		t.Fatalf("open fields missing from extra: %+v", req.Extra)
	}
}
