// Package session holds the live scope contexts a materialization writes
// into. A Store is the session's table of named contexts; a Context is one
// live scope object with its include/exclude pattern sets and the auth and
// session-management state stamped onto it.
//
// The store performs no locking. Materialization deletes and recreates a
// same-named context non-atomically, so concurrent materializations of the
// same name race with undefined outcome; the orchestrator must serialize
// materializations by name.
package session

// AuthState is the authentication configuration stamped onto a live context
// by its sub-config initializer.
type AuthState struct {
	Method string            `json:"method"`
	Params map[string]string `json:"parameters,omitempty"`
}

// SessionState is the session-tracking configuration stamped onto a live
// context.
type SessionState struct {
	Method string            `json:"method"`
	Params map[string]string `json:"parameters,omitempty"`
}

// Context is a live scope object. It is created empty by Store.CreateNamed
// and populated by a materialization pass.
type Context struct {
	name          string
	includeRegexs []string
	excludeRegexs []string

	// Auth and SessionMgmt are nil until the corresponding sub-config
	// initializer runs.
	Auth        *AuthState
	SessionMgmt *SessionState
}

// Name returns the context's lookup key.
func (c *Context) Name() string {
	return c.name
}

// AddIncludePattern registers a regex pattern defining in-scope URLs.
func (c *Context) AddIncludePattern(pattern string) {
	c.includeRegexs = append(c.includeRegexs, pattern)
}

// AddExcludePattern registers a regex pattern defining out-of-scope URLs.
func (c *Context) AddExcludePattern(pattern string) {
	c.excludeRegexs = append(c.excludeRegexs, pattern)
}

// HasIncludePattern reports whether an identical include pattern is already
// registered.
func (c *Context) HasIncludePattern(pattern string) bool {
	for _, p := range c.includeRegexs {
		if p == pattern {
			return true
		}
	}
	return false
}

// IncludePatterns returns the registered include patterns in registration
// order.
func (c *Context) IncludePatterns() []string {
	out := make([]string, len(c.includeRegexs))
	copy(out, c.includeRegexs)
	return out
}

// ExcludePatterns returns the registered exclude patterns in registration
// order.
func (c *Context) ExcludePatterns() []string {
	out := make([]string, len(c.excludeRegexs))
	copy(out, c.excludeRegexs)
	return out
}

// Store is an in-memory table of named live contexts.
type Store struct {
	contexts map[string]*Context
	order    []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{contexts: make(map[string]*Context)}
}

// FindByName returns the context registered under name, or nil.
func (s *Store) FindByName(name string) *Context {
	return s.contexts[name]
}

// CreateNamed creates and registers a new empty context under name. Any
// existing context under that name is displaced; callers that want explicit
// full-replace semantics delete first.
func (s *Store) CreateNamed(name string) *Context {
	ctx := &Context{name: name}
	if _, exists := s.contexts[name]; !exists {
		s.order = append(s.order, name)
	}
	s.contexts[name] = ctx
	return ctx
}

// Delete removes ctx from the store. Removing a context that is not
// registered (or was already displaced) is a no-op.
func (s *Store) Delete(ctx *Context) {
	if ctx == nil || s.contexts[ctx.name] != ctx {
		return
	}
	delete(s.contexts, ctx.name)
	for i, n := range s.order {
		if n == ctx.name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered context names in creation order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of registered contexts.
func (s *Store) Len() int {
	return len(s.contexts)
}
