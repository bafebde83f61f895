package detect

import "testing"

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantURL  string
		wantHost string
		wantErr  bool
	}{
		{name: "bare hostname defaults to https", raw: "example.com", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "keeps explicit http", raw: "http://example.com", wantURL: "http://example.com", wantHost: "example.com"},
		{name: "keeps explicit https", raw: "https://example.com", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "strips path", raw: "https://example.com/some/page", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "keeps port", raw: "example.com:8443", wantURL: "https://example.com:8443", wantHost: "example.com:8443"},
		{name: "trims whitespace", raw: "  example.com  ", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
		{name: "unsupported scheme", raw: "ftp://example.com", wantErr: true},
		{name: "scheme only", raw: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotHost, err := normalizeDomain(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("normalizeDomain(%q) expected error, got %q", tt.raw, gotURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeDomain(%q) failed: %v", tt.raw, err)
			}
			if gotURL != tt.wantURL {
				t.Errorf("url = %q, want %q", gotURL, tt.wantURL)
			}
			if gotHost != tt.wantHost {
				t.Errorf("host = %q, want %q", gotHost, tt.wantHost)
			}
		})
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"example.com", "example.com"},
		{"www.example.com", "example.com"},
		{"deep.sub.example.co.uk", "example.co.uk"},
		{"example.com:8443", "example.com"},
		{"192.0.2.10", ""},
		{"localhost", ""},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := registrableDomain(tt.host); got != tt.want {
				t.Errorf("registrableDomain(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}
