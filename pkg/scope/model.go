// Package scope implements the declarative testing-scope configuration and
// its bidirectional mapping onto live session contexts: loading a raw
// mapping into a validated Config, materializing a Config onto a session
// store, and snapshotting a live context back into the declarative shape.
//
// Nothing here aborts on invalid data. Problems accumulate in a
// progress.Progress sink and the offending values are kept verbatim, so a
// caller always gets the full picture of what was configured.
package scope

import "github.com/scopeforge/scopeforge/pkg/auth"

// WildcardSuffix is appended to every start URL to turn it into an include
// pattern. Snapshotting strips the same suffix to recover start URLs.
const WildcardSuffix = ".*"

// Config is the in-memory declarative scope model. The struct tags mirror
// the raw key schema so a Config marshals back to the authored shape.
type Config struct {
	// Name is the live context's lookup key. Must be non-empty once
	// variables are resolved.
	Name string `yaml:"name" json:"name"`

	// URLs are the start URLs; each becomes an include pattern with
	// WildcardSuffix appended. At least one is required.
	URLs []string `yaml:"urls,omitempty" json:"urls,omitempty"`

	// IncludePaths and ExcludePaths are regex pattern lists. nil means the
	// key was absent, which is distinct from an empty list.
	IncludePaths []string `yaml:"includePaths,omitempty" json:"includePaths,omitempty"`
	ExcludePaths []string `yaml:"excludePaths,omitempty" json:"excludePaths,omitempty"`

	Authentication    *auth.Authentication    `yaml:"authentication,omitempty" json:"authentication,omitempty"`
	SessionManagement *auth.SessionManagement `yaml:"sessionManagement,omitempty" json:"sessionManagement,omitempty"`

	Users []UserConfig `yaml:"users,omitempty" json:"users,omitempty"`
}

// UserConfig is one declarative test identity.
type UserConfig struct {
	Name     string `yaml:"name" json:"name"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// AddURL appends a start URL. Intended for building a Config
// programmatically before its first materialization.
func (c *Config) AddURL(url string) {
	c.URLs = append(c.URLs, url)
}
