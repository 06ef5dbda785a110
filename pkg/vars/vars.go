// Package vars resolves ${...} variable placeholders in scope configuration
// values.
//
// A placeholder is a ${name} token substituted at materialization time.
// Values still carrying placeholders cannot be syntax-checked yet, so
// validators call ContainsPlaceholder to defer their checks until after
// substitution. Unresolvable tokens pass through unchanged; whether that is
// an error belongs to the resolver's owner, not to the scope component.
package vars

import (
	"os"
	"strings"

	"github.com/scopeforge/scopeforge/pkg/regexcache"
)

// token matches a single ${name} placeholder.
var token = regexcache.MustGet(`\$\{[^}]+\}`)

// ContainsPlaceholder reports whether s holds at least one unresolved
// ${...} token.
func ContainsPlaceholder(s string) bool {
	return strings.Contains(s, "${")
}

// Resolver substitutes placeholder tokens in a string. Implementations must
// return the input unchanged when it contains no placeholders.
type Resolver interface {
	Resolve(s string) string
}

// MapResolver resolves placeholders from an explicit variable map, with an
// optional fallback to the process environment. Tokens found in neither are
// left intact.
type MapResolver struct {
	Vars   map[string]string
	UseEnv bool
}

// NewMapResolver returns a MapResolver over vals with environment fallback
// enabled, matching how automation plans treat ${...} references.
func NewMapResolver(vals map[string]string) *MapResolver {
	return &MapResolver{Vars: vals, UseEnv: true}
}

// Resolve replaces every resolvable ${name} token in s.
func (r *MapResolver) Resolve(s string) string {
	if !ContainsPlaceholder(s) {
		return s
	}
	return token.ReplaceAllStringFunc(s, func(tok string) string {
		name := tok[2 : len(tok)-1]
		if v, ok := r.Vars[name]; ok {
			return v
		}
		if r.UseEnv {
			if v, ok := os.LookupEnv(name); ok {
				return v
			}
		}
		return tok
	})
}
