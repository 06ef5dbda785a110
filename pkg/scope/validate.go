package scope

import (
	"fmt"
	"net/url"

	"github.com/scopeforge/scopeforge/pkg/progress"
	"github.com/scopeforge/scopeforge/pkg/regexcache"
	"github.com/scopeforge/scopeforge/pkg/vars"
)

// parseStrict parses raw as an absolute URL. Materialization and load-time
// validation share this so a URL rejected at load time is rejected the same
// way after substitution.
func parseStrict(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("not an absolute URL: %q", raw)
	}
	return nil
}

// ValidateURL checks raw for URL well-formedness. Strings still holding
// ${...} placeholders cannot be judged yet and are skipped. A failure is a
// diagnostic naming the literal, never a reason to drop it.
func ValidateURL(raw string, p *progress.Progress) {
	if vars.ContainsPlaceholder(raw) {
		return
	}
	if err := parseStrict(raw); err != nil {
		p.Error("invalid URL %q", raw)
	}
}

// ValidateRegexList checks each pattern in list for regex syntax, skipping
// entries with unresolved placeholders. The list is not modified; findings
// are advisory. field names the configuration key for the diagnostic.
func ValidateRegexList(list []string, field string, p *progress.Progress) {
	for _, pattern := range list {
		if vars.ContainsPlaceholder(pattern) {
			continue
		}
		if err := regexcache.Validate(pattern); err != nil {
			p.Error("invalid regex %q in %s: %v", pattern, field, err)
		}
	}
}
