package normalize

import "testing"

func TestEmailTrimsAndLowercases(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{" Ana@Empresa.com ", "ana@empresa.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"already@lower.io", "already@lower.io"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := Email(tc.input); got != tc.want {
			t.Errorf("Email(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestEmailIsIdempotent(t *testing.T) {
	inputs := []string{" Mixed@Case.COM ", "plain@example.com", "WEIRD @SPACES.io"}
	for _, input := range inputs {
		once := Email(input)
		if twice := Email(once); twice != once {
			t.Errorf("Email not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}

func TestDomain(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"https://www.Google.com/", "google.com", true},
		{"http://example.org", "example.org", true},
		{"example.co.uk", "example.co.uk", true},
		{"www.stripe.com", "stripe.com", true},
		{"  ACME.io/  ", "acme.io", true},
		{"invalid-domain", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Domain(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Domain(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDomainConvertsIDNToASCII(t *testing.T) {
	got, ok := Domain("https://www.münchen.de/")
	if !ok {
		t.Fatalf("expected IDN domain to be valid")
	}
	if got != "xn--mnchen-3ya.de" {
		t.Fatalf("unexpected punycode form: %q", got)
	}
}

func TestLinkedIn(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"https://www.linkedin.com/in/john-doe/", "john-doe", true},
		{"https://www.linkedin.com/company/stripe/", "stripe", true},
		{"https://www.linkedin.com/school/mit/", "mit", true},
		{"linkedin.com/in/juan-perez", "juan-perez", true},
		{"https://mx.linkedin.com/in/Juan-Perez?trk=profile", "juan-perez", true},
		{"some-user-slug", "some-user-slug", true},
		{"linkedin.com/juan-perez", "juan-perez", true},
		{"https://twitter.com/someone", "", false},
		{"not/a/slug", "", false},
		{"has.dots.but/no-marker", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := LinkedIn(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("LinkedIn(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParsePhoneUsesDefaultRegion(t *testing.T) {
	local, ok := ParsePhone("(55) 1234-5678", "MX")
	if !ok {
		t.Fatalf("expected local MX number to parse")
	}
	if local.E164 != "+525512345678" {
		t.Fatalf("unexpected e164: %q", local.E164)
	}
	if local.National != "5512345678" {
		t.Fatalf("unexpected national number: %q", local.National)
	}

	international, ok := ParsePhone("+52 55 1234 5678", "MX")
	if !ok {
		t.Fatalf("expected international number to parse")
	}
	if international.E164 != local.E164 {
		t.Fatalf("local and international forms disagree: %q vs %q", local.E164, international.E164)
	}
}

func TestParsePhoneRegionOverride(t *testing.T) {
	us, ok := ParsePhone("(415) 555-2671", "US")
	if !ok {
		t.Fatalf("expected US number to parse")
	}
	if us.E164 != "+14155552671" {
		t.Fatalf("unexpected e164: %q", us.E164)
	}
}

func TestParsePhoneRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "abc", "12", "++++"} {
		if _, ok := ParsePhone(input, "MX"); ok {
			t.Errorf("expected ParsePhone(%q) to fail", input)
		}
	}
}
