package detect

import (
	"time"

	"github.com/seoagent/hostprobe/internal/catalog"
)

// Method identifies one of the independent detection passes.
type Method string

const (
	MethodHeaders Method = "headers"
	MethodDNS     Method = "dns"
	MethodPaths   Method = "paths"
)

// Match is one signal that fired during a detection run. Matches are
// append-only audit data; they are never mutated after creation.
type Match struct {
	Method   Method  `json:"method"`
	Provider string  `json:"provider"`
	Signal   string  `json:"signal"`   // header name, redirect target, or probed path
	Observed string  `json:"observed"` // the value that satisfied the rule
	Pattern  string  `json:"pattern"`  // the declared pattern it satisfied
	Weight   float64 `json:"weight"`
}

// Candidate is one provider that cleared the confidence floor.
type Candidate struct {
	Provider   string           `json:"provider"`
	Confidence int              `json:"confidence"` // 0-100
	Profile    *catalog.Profile `json:"profile,omitempty"`
}

// Result is the outcome of a full detection run. An empty candidate list with
// zero confidence is a legitimate result, not an error.
type Result struct {
	Domain              string        `json:"domain"`
	NormalizedURL       string        `json:"normalized_url"`
	RegistrableDomain   string        `json:"registrable_domain,omitempty"`
	Candidates          []Candidate   `json:"candidates"`
	Primary             *Candidate    `json:"primary,omitempty"`
	OverallConfidence   int           `json:"overall_confidence"`
	MethodsUsed         []string      `json:"methods_used"` // "method:provider" audit tags
	Matches             []Match       `json:"matches,omitempty"`
	Recommendations     []string      `json:"recommendations"`
	AutomationAvailable bool          `json:"automation_available"`
	Duration            time.Duration `json:"duration_ns"`
}

// Record is the shape handed to persistence sinks. Sinks are best-effort;
// the detector never blocks its return value on a record being stored.
type Record struct {
	RunID             string      `json:"run_id"`
	Identity          string      `json:"identity,omitempty"` // caller-supplied account/user context
	Domain            string      `json:"domain"`
	NormalizedURL     string      `json:"normalized_url"`
	Primary           string      `json:"primary,omitempty"`
	OverallConfidence int         `json:"overall_confidence"`
	Candidates        []Candidate `json:"candidates,omitempty"`
	MethodsUsed       []string    `json:"methods_used,omitempty"`
	Matches           []Match     `json:"matches,omitempty"`
	UserAgent         string      `json:"user_agent,omitempty"`
	DurationMs        int64       `json:"duration_ms"`
	DetectedAt        time.Time   `json:"detected_at"`
}
