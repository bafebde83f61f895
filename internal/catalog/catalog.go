// Package catalog holds the static provider reference data the detector
// matches against: fingerprints (what a provider looks like on the wire) and
// capability profiles (what automation is possible once it is identified).
// The catalog is immutable after construction.
package catalog

import (
	"fmt"
	"log"
)

type Category string

const (
	CategoryCDN      Category = "cdn"
	CategoryHosting  Category = "hosting"
	CategoryPlatform Category = "platform"
	CategoryCMS      Category = "cms"
)

type ActionKind string

const (
	ActionSitemapDeploy      ActionKind = "sitemap-deploy"
	ActionRobotsDeploy       ActionKind = "robots-deploy"
	ActionEdgeFunction       ActionKind = "edge-function"
	ActionServerlessFunction ActionKind = "serverless-function"
)

type AuthKind string

const (
	AuthNone   AuthKind = "none"
	AuthAPIKey AuthKind = "api-key"
	AuthOAuth  AuthKind = "oauth"
)

// Capability is one automation action a provider exposes.
type Capability struct {
	Kind        ActionKind `json:"kind"`
	Automatable bool       `json:"automatable"`
	RequiresAuth bool      `json:"requires_auth"`
}

// Profile describes what can be done with a provider once detected.
type Profile struct {
	DisplayName       string       `json:"display_name"`
	Category          Category     `json:"category"`
	Capabilities      []Capability `json:"capabilities"`
	Auth              AuthKind     `json:"auth"`
	DeploymentMethods []string     `json:"deployment_methods"`
}

// HasAutomatableDeploy reports whether any sitemap or robots deployment
// capability is automatable for this provider.
func (p Profile) HasAutomatableDeploy() bool {
	for _, c := range p.Capabilities {
		if c.Automatable && (c.Kind == ActionSitemapDeploy || c.Kind == ActionRobotsDeploy) {
			return true
		}
	}
	return false
}

// Fingerprint is the observable signature of one provider. Headers maps a
// response header name to its match rule; DNS holds substrings looked for in
// redirect targets; Paths holds provider-specific URLs expected to be routed.
type Fingerprint struct {
	Provider string
	Headers  map[string]MatchRule
	DNS      []string
	Paths    []string
}

// Catalog is the validated reference set. Declaration order of fingerprints
// doubles as the tie-break rank for equal-confidence candidates.
type Catalog struct {
	fingerprints []Fingerprint
	profiles     map[string]Profile
	rank         map[string]int
}

// New builds a catalog from fingerprints and profiles. A profile with no
// fingerprint is a configuration error; a fingerprint with no profile is
// legal but degrades to detection-only and is logged once here.
func New(fps []Fingerprint, profiles map[string]Profile) (*Catalog, error) {
	rank := make(map[string]int, len(fps))
	for i, fp := range fps {
		if fp.Provider == "" {
			return nil, fmt.Errorf("catalog: fingerprint %d has empty provider name", i)
		}
		if _, dup := rank[fp.Provider]; dup {
			return nil, fmt.Errorf("catalog: duplicate fingerprint for %q", fp.Provider)
		}
		rank[fp.Provider] = i
	}
	for name := range profiles {
		if _, ok := rank[name]; !ok {
			return nil, fmt.Errorf("catalog: profile %q has no fingerprint", name)
		}
	}
	for _, fp := range fps {
		if _, ok := profiles[fp.Provider]; !ok {
			log.Printf("catalog: %s has no capability profile, detection-only", fp.Provider)
		}
	}
	return &Catalog{fingerprints: fps, profiles: profiles, rank: rank}, nil
}

// Fingerprints returns the fingerprints in declaration order.
func (c *Catalog) Fingerprints() []Fingerprint { return c.fingerprints }

// Profile returns the capability profile for a provider, if it has one.
func (c *Catalog) Profile(provider string) (Profile, bool) {
	p, ok := c.profiles[provider]
	return p, ok
}

// Rank returns the declaration position used for stable tie-breaking.
// Unknown providers sort last.
func (c *Catalog) Rank(provider string) int {
	if r, ok := c.rank[provider]; ok {
		return r
	}
	return len(c.fingerprints)
}

// Providers returns provider names in declaration order.
func (c *Catalog) Providers() []string {
	names := make([]string, len(c.fingerprints))
	for i, fp := range c.fingerprints {
		names[i] = fp.Provider
	}
	return names
}
