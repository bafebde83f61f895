package detect

import (
	"context"
)

// quickSignals lists one highly distinguishing response header per
// well-known provider, checked in order. Presence of the header is the
// signal; values are not inspected.
var quickSignals = []struct {
	header   string
	provider string
}{
	{"cf-ray", "cloudflare"},
	{"x-vercel-id", "vercel"},
	{"x-nf-request-id", "netlify"},
	{"x-amz-cf-id", "aws-cloudfront"},
	{"x-akamai-transformed", "akamai"},
	{"x-azure-ref", "azure-front-door"},
	{"x-github-request-id", "github-pages"},
	{"x-shopid", "shopify"},
	{"x-wix-request-id", "wix"},
	{"x-ghost-cache-status", "ghost"},
	{"x-render-origin-server", "render"},
	{"fly-request-id", "flyio"},
	{"x-pantheon-styx-hostname", "pantheon"},
}

// QuickDetect issues exactly one HEAD request and returns the first provider
// whose distinguishing header is present, or "" when none is. Redirects are
// not followed; the first response is the one inspected, which keeps the
// single-request guarantee even for apex-to-www targets. Use where latency
// matters more than completeness; no DNS or path probes are made.
func (d *Detector) QuickDetect(ctx context.Context, domain string) (string, error) {
	normURL, _, err := normalizeDomain(domain)
	if err != nil {
		return "", err
	}
	reply, err := d.head(ctx, d.noRedirect, MethodHeaders, normURL, d.userAgent)
	if err != nil {
		return "", err
	}
	for _, sig := range quickSignals {
		if reply.headers.Get(sig.header) != "" {
			return sig.provider, nil
		}
	}
	return "", nil
}
