package scope

import (
	"github.com/scopeforge/scopeforge/pkg/progress"
	"github.com/scopeforge/scopeforge/pkg/session"
	"github.com/scopeforge/scopeforge/pkg/users"
	"github.com/scopeforge/scopeforge/pkg/vars"
)

// Materialize applies the configuration to the session store and returns
// the resulting live context. The pass is best-effort: a bad item is
// diagnosed in p and skipped, never aborting the rest, and a live context
// is always returned even when heavily diagnosed.
//
// An existing context under the same resolved name is deleted first; a
// materialization owns the complete lifecycle of its name (full replace,
// not merge). The delete/create is not atomic and no rollback happens on
// partial failure, so callers must serialize materializations by name.
//
// mgr is the optional user-management collaborator; when nil, user
// provisioning is skipped silently.
func (c *Config) Materialize(store *session.Store, resolver vars.Resolver, mgr *users.Registry, p *progress.Progress) *session.Context {
	name := resolver.Resolve(c.Name)

	if old := store.FindByName(name); old != nil {
		store.Delete(old)
	}
	if mgr != nil {
		// The replaced context's identities die with it.
		mgr.RemoveContext(name)
	}
	live := store.CreateNamed(name)

	for _, raw := range c.URLs {
		resolved := resolver.Resolve(raw)
		if err := parseStrict(resolved); err != nil {
			p.Error("invalid URL %q", raw)
			continue
		}
		live.AddIncludePattern(resolved + WildcardSuffix)
	}

	for _, pattern := range c.IncludePaths {
		resolved := resolver.Resolve(pattern)
		// A start URL may already have produced the same pattern.
		if !live.HasIncludePattern(resolved) {
			live.AddIncludePattern(resolved)
		}
	}

	for _, pattern := range c.ExcludePaths {
		live.AddExcludePattern(resolver.Resolve(pattern))
	}

	if c.SessionManagement != nil {
		c.SessionManagement.Init(live, p)
	}
	if c.Authentication != nil {
		c.Authentication.Init(live, p)
	}
	if c.Users != nil && mgr != nil {
		c.provisionUsers(live, resolver, mgr)
	}

	return live
}

// provisionUsers creates one enabled username/password identity per
// configured user. Duplicate names are not checked; each entry yields a
// distinct identity.
func (c *Config) provisionUsers(live *session.Context, resolver vars.Resolver, mgr *users.Registry) {
	for _, uc := range c.Users {
		id := mgr.CreateIdentity(live.Name(), resolver.Resolve(uc.Name))
		id.SetCredentials(users.KindUsernamePassword, map[string]string{
			"username": resolver.Resolve(uc.Username),
			"password": resolver.Resolve(uc.Password),
		})
		id.SetEnabled(true)
		mgr.Register(id)
	}
}
