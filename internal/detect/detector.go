// Package detect implements the hosting-provider detection engine: three
// independent probe passes (response headers, redirect targets, provider
// paths) scored against the fingerprint catalog and merged into a ranked
// result with deployment recommendations.
package detect

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/seoagent/hostprobe/internal/catalog"
	"github.com/seoagent/hostprobe/internal/metrics"
)

const (
	// Per-method score ceilings. Headers are the strongest evidence, path
	// routing the weakest; redirect targets contribute a flat weight per
	// match since they are coarse, single-bit signals.
	headerMethodMax = 100.0
	dnsMatchWeight  = 30.0
	pathMethodMax   = 40.0

	// Providers at or below the floor are suppressed to keep single weak
	// signals from surfacing as candidates.
	confidenceFloor = 20

	defaultUserAgent   = "SEOAgent-HostProbe/1.0 (+https://seoagent.com)"
	defaultTimeout     = 5 * time.Second
	defaultConcurrency = 8
)

// Detector runs provider detection against a target domain. It is safe for
// concurrent use; every run builds fresh score accumulators.
type Detector struct {
	catalog     *catalog.Catalog
	client      *http.Client // follows redirects
	noRedirect  *http.Client // returns the first response as-is
	userAgent   string
	timeout     time.Duration
	concurrency int
	probeRate   float64 // path probes per second per run, 0 = unlimited
	emit        func(Record)
	metrics     *metrics.Metrics
}

type Option func(*Detector)

// WithHTTPClient substitutes the HTTP client used for all probes. The
// no-redirect variant is derived from the same transport.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Detector) { d.client = c }
}

func WithUserAgent(ua string) Option {
	return func(d *Detector) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

func WithTimeout(t time.Duration) Option {
	return func(d *Detector) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// WithConcurrency bounds simultaneous path-fingerprint probes per run.
func WithConcurrency(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithProbeRate caps path probes per second against a single target.
func WithProbeRate(r float64) Option {
	return func(d *Detector) { d.probeRate = r }
}

// WithEmitter attaches the best-effort persistence collaborator. It is
// resolved once here, not re-probed per call.
func WithEmitter(emit func(Record)) Option {
	return func(d *Detector) { d.emit = emit }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Detector) { d.metrics = m }
}

// RunOption adjusts a single detection run without touching the Detector's
// defaults.
type RunOption func(*runConfig)

type runConfig struct {
	userAgent string
}

// ForUserAgent overrides the probe User-Agent for one run. An empty value
// keeps the Detector's configured agent.
func ForUserAgent(ua string) RunOption {
	return func(rc *runConfig) {
		if ua != "" {
			rc.userAgent = ua
		}
	}
}

// New builds a Detector over the given catalog.
func New(cat *catalog.Catalog, opts ...Option) *Detector {
	d := &Detector{
		catalog:     cat,
		userAgent:   defaultUserAgent,
		timeout:     defaultTimeout,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = &http.Client{Timeout: d.timeout}
	}
	d.noRedirect = &http.Client{
		Transport: d.client.Transport,
		Timeout:   d.client.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return d
}

// passResult is the private output of one detection pass. Each pass owns its
// accumulator; merging happens in Detect after all passes return.
type passResult struct {
	scores  map[string]float64
	matches []Match
}

// Detect runs all three passes against the domain and returns a ranked
// result. Probe failures degrade to missing signals; the only error is an
// unusable domain. The identity is used solely for routing the result to the
// persistence collaborator.
func (d *Detector) Detect(ctx context.Context, domain, identity string, opts ...RunOption) (*Result, error) {
	normURL, host, err := normalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	rc := runConfig{userAgent: d.userAgent}
	for _, opt := range opts {
		opt(&rc)
	}
	start := time.Now()

	headerCh := make(chan passResult, 1)
	dnsCh := make(chan passResult, 1)
	pathCh := make(chan passResult, 1)
	go func() { headerCh <- d.headerPass(ctx, normURL, rc.userAgent) }()
	go func() { dnsCh <- d.dnsPass(ctx, host, rc.userAgent) }()
	go func() { pathCh <- d.pathPass(ctx, normURL, rc.userAgent) }()

	// Merge in a fixed order so audit output is deterministic regardless of
	// which pass finishes first.
	passes := []passResult{<-headerCh, <-dnsCh, <-pathCh}

	scores := make(map[string]float64)
	var matches []Match
	for _, p := range passes {
		mergeScores(scores, p.scores)
		matches = append(matches, p.matches...)
	}

	res := d.assemble(domain, normURL, host, scores, matches)
	res.Duration = time.Since(start)

	if d.metrics != nil {
		outcome := "none"
		if res.Primary != nil {
			outcome = res.Primary.Provider
		}
		d.metrics.IncrementDetections(outcome)
		durOutcome := "none"
		if res.Primary != nil {
			durOutcome = "detected"
		}
		d.metrics.ObserveDetectDuration(durOutcome, res.Duration)
	}

	if d.emit != nil && identity != "" {
		rec := d.buildRecord(res, identity, rc.userAgent)
		// Fire and forget; a slow or failing sink never delays the caller.
		go d.emit(rec)
	}

	return res, nil
}

// mergeScores sums src into dst. Summation is commutative, so merge order
// never affects final confidence.
func mergeScores(dst, src map[string]float64) {
	for provider, score := range src {
		dst[provider] += score
	}
}

func clampConfidence(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score + 0.5)
}

func (d *Detector) assemble(domain, normURL, host string, scores map[string]float64, matches []Match) *Result {
	res := &Result{
		Domain:            domain,
		NormalizedURL:     normURL,
		RegistrableDomain: registrableDomain(host),
		Candidates:        []Candidate{},
		MethodsUsed:       methodTags(matches),
		Matches:           matches,
	}

	for provider, score := range scores {
		conf := clampConfidence(score)
		if conf <= confidenceFloor {
			continue
		}
		c := Candidate{Provider: provider, Confidence: conf}
		if p, ok := d.catalog.Profile(provider); ok {
			c.Profile = &p
		}
		res.Candidates = append(res.Candidates, c)
	}

	sort.SliceStable(res.Candidates, func(i, j int) bool {
		a, b := res.Candidates[i], res.Candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return d.catalog.Rank(a.Provider) < d.catalog.Rank(b.Provider)
	})

	if len(res.Candidates) > 0 {
		res.Primary = &res.Candidates[0]
		res.OverallConfidence = res.Primary.Confidence
	}
	for _, c := range res.Candidates {
		if c.Profile != nil && c.Profile.HasAutomatableDeploy() {
			res.AutomationAvailable = true
			break
		}
	}
	res.Recommendations = recommendations(res.Primary)
	return res
}

// methodTags derives the deduplicated "method:provider" audit tags,
// preserving first-seen order.
func methodTags(matches []Match) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, m := range matches {
		tag := string(m.Method) + ":" + m.Provider
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func (d *Detector) buildRecord(res *Result, identity, userAgent string) Record {
	rec := Record{
		RunID:             uuid.New().String(),
		Identity:          identity,
		Domain:            res.Domain,
		NormalizedURL:     res.NormalizedURL,
		OverallConfidence: res.OverallConfidence,
		Candidates:        res.Candidates,
		MethodsUsed:       res.MethodsUsed,
		Matches:           res.Matches,
		UserAgent:         userAgent,
		DurationMs:        res.Duration.Milliseconds(),
		DetectedAt:        time.Now().UTC(),
	}
	if res.Primary != nil {
		rec.Primary = res.Primary.Provider
	}
	return rec
}

// newLimiter builds the per-run path-probe limiter.
func (d *Detector) newLimiter() *rate.Limiter {
	if d.probeRate <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(d.probeRate)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(d.probeRate), burst)
}

func logProbeError(method Method, target string, err error) {
	log.Printf("detect: %s probe %s: %v", method, target, err)
}
