package auth

import (
	"net/http"
	"strings"
)

// Policy decides which requests bypass authentication.
type Policy struct {
	exemptPrefixes []string
}

// NewPolicy constructs a policy exempting the given path prefixes.
func NewPolicy(exemptPrefixes []string) Policy {
	return Policy{exemptPrefixes: exemptPrefixes}
}

// IsExempt reports whether a request skips auth.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return false
	}
	for _, prefix := range p.exemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}
