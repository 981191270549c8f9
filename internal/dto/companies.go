package dto

import "encoding/json"

// CompanyUpsertRequest is the POST /companies body.
type CompanyUpsertRequest struct {
	Domain      string
	LinkedInURL string
	Extra       map[string]any
}

// UnmarshalJSON splits identifier fields from the open remainder of the body.
func (r *CompanyUpsertRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Domain = popString(raw, "domain")
	r.LinkedInURL = popString(raw, "linkedin_url")
	r.Extra = raw
	return nil
}

// CompanyQuery carries the GET /companies lookup parameters.
type CompanyQuery struct {
	Domain   string
	LinkedIn string
}
