// Package normalize turns loosely formatted contact attributes into the
// canonical keys used for identity resolution.
package normalize

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

const DefaultPhoneRegion = "MX"

var idnaProfile = idna.Lookup

// Email canonicalizes an email address. Total: never fails.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Domain canonicalizes a company domain: lowercase host with protocol,
// leading www. and one trailing slash stripped. A result without a dot is
// not a domain.
func Domain(raw string) (string, bool) {
	domain := strings.ToLower(strings.TrimSpace(raw))

	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.TrimSuffix(domain, "/")

	if !strings.Contains(domain, ".") {
		return "", false
	}

	// Internationalized hosts are stored in their ASCII (punycode) form,
	// matching how email domains are compared elsewhere.
	if !isASCII(domain) {
		if ascii, err := idnaProfile.ToASCII(domain); err == nil && ascii != "" {
			domain = ascii
		}
	}

	return domain, true
}

var linkedInMarkers = map[string]bool{"in": true, "company": true, "school": true}

// LinkedIn extracts the canonical lowercase slug from a LinkedIn URL.
// Inputs that are already bare slugs (no slashes, no dots) pass through.
func LinkedIn(raw string) (string, bool) {
	input := strings.ToLower(strings.TrimSpace(raw))
	if input == "" {
		return "", false
	}

	parseable := input
	if !strings.Contains(parseable, "://") {
		parseable = "https://" + parseable
	}

	if u, err := url.Parse(parseable); err == nil && strings.Contains(u.Host, "linkedin.com") {
		segments := splitPath(u.Path)
		for i, segment := range segments {
			if linkedInMarkers[segment] && i+1 < len(segments) {
				return trimSlug(segments[i+1]), true
			}
		}
		if len(segments) == 1 {
			return trimSlug(segments[0]), true
		}
	}

	if !strings.Contains(input, "/") && !strings.Contains(input, ".") {
		return input, true
	}

	return "", false
}

// Phone holds both normalized forms of a valid phone number.
type Phone struct {
	// E164 is the full international form, e.g. +525512345678.
	E164 string
	// National is the national significant number: digits only, country
	// code removed.
	National string
}

// ParsePhone validates and normalizes a phone number, assuming defaultRegion
// when the input carries no country code.
func ParsePhone(raw, defaultRegion string) (Phone, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Phone{}, false
	}

	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = DefaultPhoneRegion
	}

	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return Phone{}, false
	}
	if !phonenumbers.IsValidNumber(number) {
		return Phone{}, false
	}

	return Phone{
		E164:     phonenumbers.Format(number, phonenumbers.E164),
		National: phonenumbers.GetNationalSignificantNumber(number),
	}, true
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// trimSlug drops a query or fragment that survived URL parsing inside a
// path segment.
func trimSlug(segment string) string {
	if i := strings.IndexAny(segment, "?#"); i >= 0 {
		return segment[:i]
	}
	return segment
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
