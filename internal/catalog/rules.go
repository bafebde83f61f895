package catalog

import (
	"log"
	"regexp"
	"strings"
)

type matchKind int

const (
	matchExact matchKind = iota
	matchSubstring
	matchRegex
)

// MatchRule is the tagged variant used by fingerprint signatures: an exact
// value, a substring, or a regular expression. Regexes are compiled when the
// rule is declared; a malformed expression disables that one rule without
// affecting the rest of the catalog.
type MatchRule struct {
	kind   matchKind
	value  string
	re     *regexp.Regexp
	broken bool
}

func Exact(s string) MatchRule {
	return MatchRule{kind: matchExact, value: s}
}

func Substring(s string) MatchRule {
	return MatchRule{kind: matchSubstring, value: s}
}

func Regex(expr string) MatchRule {
	re, err := regexp.Compile(expr)
	if err != nil {
		log.Printf("catalog: bad regex %q: %v", expr, err)
		return MatchRule{kind: matchRegex, value: expr, broken: true}
	}
	return MatchRule{kind: matchRegex, value: expr, re: re}
}

// Matches reports whether the observed value satisfies the rule. Exact and
// substring comparisons are case-insensitive; header casing is not evidence.
func (r MatchRule) Matches(observed string) bool {
	switch r.kind {
	case matchExact:
		return strings.EqualFold(observed, r.value)
	case matchSubstring:
		return strings.Contains(strings.ToLower(observed), strings.ToLower(r.value))
	case matchRegex:
		if r.broken {
			return false
		}
		return r.re.MatchString(observed)
	}
	return false
}

// Pattern returns the declared pattern text, used in match audit records.
func (r MatchRule) Pattern() string { return r.value }
