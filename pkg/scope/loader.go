package scope

import (
	"github.com/scopeforge/scopeforge/internal/rawval"
	"github.com/scopeforge/scopeforge/pkg/auth"
	"github.com/scopeforge/scopeforge/pkg/progress"
)

// knownKeys is the fixed raw-mapping schema. Anything else is reported as
// an unknown option and ignored.
var knownKeys = map[string]bool{
	"name":              true,
	"urls":              true,
	"url":               true,
	"includePaths":      true,
	"excludePaths":      true,
	"authentication":    true,
	"sessionManagement": true,
	"users":             true,
}

// Load parses a raw scope mapping into a Config. It never fails: every
// shape or syntax problem is recorded in p and loading continues, with the
// affected field left at its default or the invalid value kept verbatim.
// A nil value under a key is treated as the key being absent.
//
// Callers decide success by inspecting p, not the returned Config.
func Load(raw map[string]any, p *progress.Progress) *Config {
	c := &Config{}

	if v, ok := present(raw, "name"); ok {
		c.Name = rawval.String(v)
	}

	if v, ok := present(raw, "urls"); ok {
		list, ok := rawval.List(v)
		if !ok {
			p.Error("urls is not a list: %v", v)
		} else {
			for _, entry := range list {
				u := rawval.String(entry)
				c.URLs = append(c.URLs, u)
				ValidateURL(u, p)
			}
		}
	}

	if v, ok := present(raw, "url"); ok {
		u := rawval.String(v)
		c.URLs = append(c.URLs, u)
		ValidateURL(u, p)
		p.Warn("the url field is deprecated, use urls")
	}

	if v, ok := present(raw, "includePaths"); ok {
		c.IncludePaths = loadRegexList(v, "includePaths", p)
	}
	if v, ok := present(raw, "excludePaths"); ok {
		c.ExcludePaths = loadRegexList(v, "excludePaths", p)
	}

	if v, ok := present(raw, "authentication"); ok {
		c.Authentication = auth.NewAuthentication(v, p)
	}
	if v, ok := present(raw, "sessionManagement"); ok {
		c.SessionManagement = auth.NewSessionManagement(v, p)
	}

	if v, ok := present(raw, "users"); ok {
		list, ok := rawval.List(v)
		if !ok {
			p.Error("users is not a list: %v", v)
		} else {
			c.Users = loadUsers(list, p)
		}
	}

	for _, key := range rawval.SortedKeys(raw) {
		if !knownKeys[key] && raw[key] != nil {
			p.Warn("unknown context option %q", key)
		}
	}

	if c.Name == "" {
		p.Error("context has no name: %v", raw)
	}
	if len(c.URLs) == 0 {
		p.Error("context has no url: %v", raw)
	}

	return c
}

// present reports whether key carries a usable value; nil counts as absent.
func present(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// loadRegexList collects a pattern list and syntax-checks it. A non-list
// value is an error and the field stays absent; invalid patterns inside a
// well-formed list are diagnosed but retained.
func loadRegexList(v any, field string, p *progress.Progress) []string {
	list, ok := rawval.List(v)
	if !ok {
		p.Error("%s is not a list: %v", field, v)
		return nil
	}
	patterns := make([]string, 0, len(list))
	for _, entry := range list {
		patterns = append(patterns, rawval.String(entry))
	}
	ValidateRegexList(patterns, field, p)
	return patterns
}

// loadUsers decodes the users list. A non-mapping element has no value
// worth keeping and is skipped with an error; inside a mapping, decoding is
// field by field and an unknown field is an error that does not stop the
// remaining fields.
func loadUsers(list []any, p *progress.Progress) []UserConfig {
	out := make([]UserConfig, 0, len(list))
	for _, entry := range list {
		m, ok := rawval.Mapping(entry)
		if !ok {
			p.Error("invalid user entry: %v", entry)
			continue
		}
		var u UserConfig
		for _, key := range rawval.SortedKeys(m) {
			v := m[key]
			if v == nil {
				continue
			}
			switch key {
			case "name":
				u.Name = rawval.String(v)
			case "username":
				u.Username = rawval.String(v)
			case "password":
				u.Password = rawval.String(v)
			default:
				p.Error("unknown user field %q: %v", key, v)
			}
		}
		out = append(out, u)
	}
	return out
}
