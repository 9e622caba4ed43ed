package rights

import "strings"

// Evaluator decides URL authorization from an ordered rule set.
//
// The policy is first-deny-wins: rules are walked in declaration order
// and the first rule whose path covers the URL while its scope does not
// cover the identity denies the request. No rules at all means
// everything is authorized. This is intentionally not
// most-specific-wins; exceptions must be expressed as separate rules
// scoped so that no broader rule fires first.
type Evaluator struct {
	BaseURL string
	Rules   Rules
}

// NewEvaluator builds an evaluator; the base URL is normalized to end
// with a single separator.
func NewEvaluator(baseURL string, rules Rules) Evaluator {
	return Evaluator{BaseURL: normalizeBase(baseURL), Rules: rules}
}

// IsAuthorized reports whether identity may access url. url includes
// the base URL prefix; a trailing separator is ignored.
func (e Evaluator) IsAuthorized(identity, url string) bool {
	if len(e.Rules) == 0 {
		return true
	}
	url = strings.TrimRight(url, "/")
	base := normalizeBase(e.BaseURL)
	for _, rule := range e.Rules {
		// The rule covers the URL but its scope does not cover the
		// identity.
		if IsParentPath(base+rule.Path, url) && !IsParentPath(rule.Scope, identity) {
			return false
		}
	}
	return true
}

// normalizeBase keeps one trailing separator so rule paths concatenate
// cleanly. An empty base stays empty: rules then match relative URLs.
func normalizeBase(base string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/"
}
