// Package users manages the test identities associated with live scope
// contexts. Materialization provisions identities here; snapshotting reads
// them back. Identities are scoped by context name.
package users

import "github.com/google/uuid"

// KindUsernamePassword is the only credential kind materialization creates.
// Other kinds may exist on identities created elsewhere; snapshotting skips
// them.
const KindUsernamePassword = "usernamePassword"

// Credentials holds an identity's credential kind and its fields, e.g.
// username/password for KindUsernamePassword.
type Credentials struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Identity is a test user bound to a context.
type Identity struct {
	ID          string      `json:"id"`
	ContextName string      `json:"context"`
	Name        string      `json:"name"`
	Enabled     bool        `json:"enabled"`
	Credentials Credentials `json:"credentials"`
}

// SetCredentials replaces the identity's credentials.
func (u *Identity) SetCredentials(kind string, fields map[string]string) {
	u.Credentials = Credentials{Kind: kind, Fields: fields}
}

// SetEnabled marks the identity active or inactive.
func (u *Identity) SetEnabled(enabled bool) {
	u.Enabled = enabled
}

// Registry is an in-memory user-management collaborator. Like the session
// store it performs no locking; callers serialize access.
type Registry struct {
	byContext map[string][]*Identity
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byContext: make(map[string][]*Identity)}
}

// CreateIdentity builds a new disabled identity scoped to contextName. The
// identity is not visible until Register is called. No duplicate-name
// checking is performed.
func (r *Registry) CreateIdentity(contextName, name string) *Identity {
	return &Identity{
		ID:          uuid.NewString(),
		ContextName: contextName,
		Name:        name,
	}
}

// Register adds the identity to its context's user list.
func (r *Registry) Register(id *Identity) {
	r.byContext[id.ContextName] = append(r.byContext[id.ContextName], id)
}

// ForContext returns the registered identities for contextName in
// registration order.
func (r *Registry) ForContext(contextName string) []*Identity {
	ids := r.byContext[contextName]
	out := make([]*Identity, len(ids))
	copy(out, ids)
	return out
}

// RemoveContext drops every identity scoped to contextName. Materialization
// calls this when it replaces a same-named context, so stale identities do
// not survive the old context they belonged to.
func (r *Registry) RemoveContext(contextName string) {
	delete(r.byContext, contextName)
}
