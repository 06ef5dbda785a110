package scope

import (
	"log"
	"strings"

	"github.com/scopeforge/scopeforge/pkg/auth"
	"github.com/scopeforge/scopeforge/pkg/session"
	"github.com/scopeforge/scopeforge/pkg/users"
)

// Snapshot captures a live context back into the declarative shape, for
// export or round-tripping. mgr is optional; when nil no users are
// captured.
//
// Live contexts do not record which include patterns came from start URLs,
// so start URLs are recovered heuristically from include patterns ending in
// WildcardSuffix. The recovery is lossy both ways: a start URL whose
// derived pattern was removed is not recovered, and a manually added
// suffixed pattern is reported as a start URL. Downstream consumers depend
// on this shape, so it stays as is.
func Snapshot(live *session.Context, mgr *users.Registry) *Config {
	c := &Config{
		Name:         live.Name(),
		IncludePaths: live.IncludePatterns(),
		ExcludePaths: live.ExcludePatterns(),
	}

	for _, pattern := range c.IncludePaths {
		if strings.HasSuffix(pattern, WildcardSuffix) {
			c.AddURL(strings.TrimSuffix(pattern, WildcardSuffix))
		}
	}

	c.SessionManagement = auth.SnapshotSessionManagement(live)
	c.Authentication = auth.SnapshotAuthentication(live)

	if mgr != nil {
		for _, id := range mgr.ForContext(live.Name()) {
			if id.Credentials.Kind != users.KindUsernamePassword {
				// Only username/password credentials survive a snapshot.
				log.Printf("scope: credentials kind %q of user %q not yet supported", id.Credentials.Kind, id.Name)
				continue
			}
			c.Users = append(c.Users, UserConfig{
				Name:     id.Name,
				Username: id.Credentials.Fields["username"],
				Password: id.Credentials.Fields["password"],
			})
		}
	}

	return c
}
