package dto

import "encoding/json"

// ProfileUpsertRequest is the POST /profiles body. Known identifier fields
// are peeled off; everything else lands in Extra and is merged into the
// stored data document.
type ProfileUpsertRequest struct {
	Email           string
	LinkedInURL     string
	LinkedInProfile string
	Phone           string
	Extra           map[string]any
}

// UnmarshalJSON splits identifier fields from the open remainder of the body.
func (r *ProfileUpsertRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Email = popString(raw, "email")
	r.LinkedInURL = popString(raw, "linkedin_url")
	r.LinkedInProfile = popString(raw, "linkedin_profile")
	r.Phone = popString(raw, "phone")
	r.Extra = raw
	return nil
}

// LinkedInInput returns the LinkedIn value the caller supplied, preferring
// linkedin_url over its linkedin_profile alias.
func (r *ProfileUpsertRequest) LinkedInInput() string {
	if r.LinkedInURL != "" {
		return r.LinkedInURL
	}
	return r.LinkedInProfile
}

// ProfileQuery carries the GET /profiles lookup parameters.
type ProfileQuery struct {
	Email    string
	LinkedIn string
	Phone    string
}

// popString removes and returns a string field; non-string values stay in
// the map so they end up in the data document instead of being dropped.
func popString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	delete(m, key)
	return s
}
