package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeforge/scopeforge/pkg/auth"
	"github.com/scopeforge/scopeforge/pkg/progress"
	"github.com/scopeforge/scopeforge/pkg/session"
	"github.com/scopeforge/scopeforge/pkg/users"
	"github.com/scopeforge/scopeforge/pkg/vars"
)

func noVars() vars.Resolver {
	return &vars.MapResolver{Vars: map[string]string{}}
}

func TestMaterializeBasic(t *testing.T) {
	store := session.NewStore()
	p := progress.New()

	c := &Config{Name: "app", URLs: []string{"https://example.com"}}
	live := c.Materialize(store, noVars(), nil, p)

	require.NotNil(t, live)
	assert.False(t, p.HasErrors(), "errors: %v", p.Errors())
	assert.Equal(t, "app", live.Name())
	assert.Equal(t, []string{"https://example.com.*"}, live.IncludePatterns())
	assert.Same(t, live, store.FindByName("app"))
}

func TestMaterializeResolvesVariables(t *testing.T) {
	store := session.NewStore()
	resolver := &vars.MapResolver{Vars: map[string]string{
		"env":  "staging",
		"host": "staging.example.com",
	}}

	c := &Config{
		Name:         "app-${env}",
		URLs:         []string{"https://${host}"},
		ExcludePaths: []string{"https://${host}/logout.*"},
	}
	live := c.Materialize(store, resolver, nil, progress.New())

	assert.Equal(t, "app-staging", live.Name())
	assert.Equal(t, []string{"https://staging.example.com.*"}, live.IncludePatterns())
	assert.Equal(t, []string{"https://staging.example.com/logout.*"}, live.ExcludePatterns())
}

func TestMaterializeFullReplace(t *testing.T) {
	store := session.NewStore()
	mgr := users.NewRegistry()

	first := &Config{
		Name:  "app",
		URLs:  []string{"https://one.example.com"},
		Users: []UserConfig{{Name: "old", Username: "old", Password: "pw"}},
	}
	first.Materialize(store, noVars(), mgr, progress.New())

	second := &Config{
		Name: "app",
		URLs: []string{"https://two.example.com"},
	}
	live := second.Materialize(store, noVars(), mgr, progress.New())

	// Exactly one context under the name, reflecting only the second model.
	assert.Equal(t, 1, store.Len())
	assert.Same(t, live, store.FindByName("app"))
	assert.Equal(t, []string{"https://two.example.com.*"}, live.IncludePatterns())
	assert.Empty(t, mgr.ForContext("app"), "replaced context's users must not survive")
}

func TestMaterializeSkipsBadURLOnly(t *testing.T) {
	store := session.NewStore()
	p := progress.New()

	c := &Config{Name: "app", URLs: []string{"https://example.com", "${missing-var", "https://other.example.com"}}
	live := c.Materialize(store, noVars(), nil, p)

	require.Len(t, p.Errors(), 1)
	assert.Contains(t, p.Errors()[0], "invalid URL")
	assert.Equal(t, []string{"https://example.com.*", "https://other.example.com.*"}, live.IncludePatterns())
}

func TestMaterializeUnresolvedPlaceholderURL(t *testing.T) {
	store := session.NewStore()
	p := progress.New()

	// The resolver knows nothing, so the token survives resolution and the
	// URL fails strict parsing at registration time.
	c := &Config{Name: "app", URLs: []string{"https://${host}/app"}}
	live := c.Materialize(store, noVars(), nil, p)

	require.Len(t, p.Errors(), 1)
	assert.Contains(t, p.Errors()[0], `invalid URL "https://${host}/app"`)
	assert.Empty(t, live.IncludePatterns())
}

func TestMaterializeDedupsIncludePatterns(t *testing.T) {
	store := session.NewStore()

	c := &Config{
		Name:         "app",
		URLs:         []string{"https://example.com"},
		IncludePaths: []string{"https://example.com.*", "https://example.com/api/.*"},
	}
	live := c.Materialize(store, noVars(), nil, progress.New())

	// The explicit pattern equal to the URL-derived one is not duplicated.
	assert.Equal(t, []string{"https://example.com.*", "https://example.com/api/.*"}, live.IncludePatterns())
}

func TestMaterializeExcludesNotDeduped(t *testing.T) {
	store := session.NewStore()

	c := &Config{
		Name:         "app",
		URLs:         []string{"https://example.com"},
		ExcludePaths: []string{".*logout.*", ".*logout.*"},
	}
	live := c.Materialize(store, noVars(), nil, progress.New())

	assert.Equal(t, []string{".*logout.*", ".*logout.*"}, live.ExcludePatterns())
}

func TestMaterializeSubConfigs(t *testing.T) {
	store := session.NewStore()

	c := &Config{
		Name:              "app",
		URLs:              []string{"https://example.com"},
		Authentication:    &auth.Authentication{Method: auth.MethodForm},
		SessionManagement: &auth.SessionManagement{Method: auth.SessionCookie},
	}
	live := c.Materialize(store, noVars(), nil, progress.New())

	require.NotNil(t, live.Auth)
	assert.Equal(t, auth.MethodForm, live.Auth.Method)
	require.NotNil(t, live.SessionMgmt)
	assert.Equal(t, auth.SessionCookie, live.SessionMgmt.Method)
}

func TestMaterializeProvisionsUsers(t *testing.T) {
	store := session.NewStore()
	mgr := users.NewRegistry()
	resolver := &vars.MapResolver{Vars: map[string]string{"adminpw": "s3cret"}}

	c := &Config{
		Name: "app",
		URLs: []string{"https://example.com"},
		Users: []UserConfig{
			{Name: "admin", Username: "admin@example.com", Password: "${adminpw}"},
			{Name: "admin", Username: "admin2@example.com", Password: "pw"},
		},
	}
	c.Materialize(store, resolver, mgr, progress.New())

	ids := mgr.ForContext("app")
	require.Len(t, ids, 2, "duplicate names create distinct identities")
	assert.Equal(t, users.KindUsernamePassword, ids[0].Credentials.Kind)
	assert.Equal(t, "s3cret", ids[0].Credentials.Fields["password"])
	assert.True(t, ids[0].Enabled)
	assert.NotEqual(t, ids[0].ID, ids[1].ID)
}

func TestMaterializeWithoutUserManagerSkipsUsers(t *testing.T) {
	store := session.NewStore()
	p := progress.New()

	c := &Config{
		Name:  "app",
		URLs:  []string{"https://example.com"},
		Users: []UserConfig{{Name: "admin", Username: "admin", Password: "pw"}},
	}
	live := c.Materialize(store, noVars(), nil, p)

	// Provisioning is optional enrichment: no manager, no diagnostics.
	require.NotNil(t, live)
	assert.False(t, p.HasErrors())
	assert.False(t, p.HasWarnings())
}

func TestMaterializeAlwaysReturnsContext(t *testing.T) {
	store := session.NewStore()
	p := progress.New()

	// Empty model: still yields a named but scope-empty live context.
	c := &Config{Name: "empty"}
	live := c.Materialize(store, noVars(), nil, p)

	require.NotNil(t, live)
	assert.Equal(t, "empty", live.Name())
	assert.Empty(t, live.IncludePatterns())
	assert.Same(t, live, store.FindByName("empty"))
}
