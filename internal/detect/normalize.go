package detect

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrBadDomain marks input that cannot be probed at all. It is the only
// error class Detect and QuickDetect return for caller mistakes; probe
// failures are swallowed into missing signals instead.
var ErrBadDomain = errors.New("detect: unusable domain")

// normalizeDomain turns a bare hostname or URL into the probe origin
// (scheme://host) plus the host itself. A missing scheme defaults to https.
func normalizeDomain(raw string) (normURL, host string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("%w: empty input", ErrBadDomain)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: parse %q: %v", ErrBadDomain, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("%w: unsupported scheme %q", ErrBadDomain, u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: no host in %q", ErrBadDomain, raw)
	}
	return u.Scheme + "://" + u.Host, u.Host, nil
}

// registrableDomain extracts the eTLD+1 for result metadata. Best-effort:
// IPs and unlisted suffixes yield an empty string.
func registrableDomain(host string) string {
	h := host
	if hostname, _, err := net.SplitHostPort(host); err == nil {
		h = hostname
	}
	if net.ParseIP(h) != nil {
		return ""
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(h))
	if err != nil {
		return ""
	}
	return etld1
}
