// Package auth carries the authentication and session-management sub-configs
// of a scope configuration. The scope component stores them, checks their
// shape, and forwards them onto the live context; the protocol behavior
// behind a method name is owned elsewhere.
package auth

import (
	"github.com/scopeforge/scopeforge/internal/rawval"
	"github.com/scopeforge/scopeforge/pkg/progress"
	"github.com/scopeforge/scopeforge/pkg/session"
)

// Authentication method names understood by the session layer.
const (
	MethodManual  = "manual"
	MethodHTTP    = "http"
	MethodForm    = "form"
	MethodJSON    = "json"
	MethodScript  = "script"
	MethodBrowser = "browser"
)

var knownAuthMethods = map[string]bool{
	MethodManual:  true,
	MethodHTTP:    true,
	MethodForm:    true,
	MethodJSON:    true,
	MethodScript:  true,
	MethodBrowser: true,
}

// Authentication is the declarative authentication sub-config.
type Authentication struct {
	Method     string            `yaml:"method,omitempty" json:"method,omitempty"`
	Parameters map[string]string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// NewAuthentication decodes the raw authentication mapping. Shape problems
// go to p; the decoded value is returned regardless so the configuration is
// never lost to a diagnostic.
func NewAuthentication(value any, p *progress.Progress) *Authentication {
	a := &Authentication{}
	decodeSubConfig(value, "authentication", knownAuthMethods, &a.Method, &a.Parameters, p)
	return a
}

// Init stamps the authentication configuration onto the live context.
func (a *Authentication) Init(ctx *session.Context, p *progress.Progress) {
	ctx.Auth = &session.AuthState{Method: a.Method, Params: copyParams(a.Parameters)}
}

// SnapshotAuthentication reads the authentication state back off a live
// context, or nil when none was initialized.
func SnapshotAuthentication(ctx *session.Context) *Authentication {
	if ctx.Auth == nil {
		return nil
	}
	return &Authentication{Method: ctx.Auth.Method, Parameters: copyParams(ctx.Auth.Params)}
}

// Session-management method names understood by the session layer.
const (
	SessionCookie = "cookie"
	SessionHTTP   = "http"
	SessionScript = "script"
)

var knownSessionMethods = map[string]bool{
	SessionCookie: true,
	SessionHTTP:   true,
	SessionScript: true,
}

// SessionManagement is the declarative session-tracking sub-config.
type SessionManagement struct {
	Method     string            `yaml:"method,omitempty" json:"method,omitempty"`
	Parameters map[string]string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// NewSessionManagement decodes the raw sessionManagement mapping, reporting
// shape problems to p.
func NewSessionManagement(value any, p *progress.Progress) *SessionManagement {
	s := &SessionManagement{}
	decodeSubConfig(value, "sessionManagement", knownSessionMethods, &s.Method, &s.Parameters, p)
	return s
}

// Init stamps the session-management configuration onto the live context.
func (s *SessionManagement) Init(ctx *session.Context, p *progress.Progress) {
	ctx.SessionMgmt = &session.SessionState{Method: s.Method, Params: copyParams(s.Parameters)}
}

// SnapshotSessionManagement reads the session-management state back off a
// live context, or nil when none was initialized.
func SnapshotSessionManagement(ctx *session.Context) *SessionManagement {
	if ctx.SessionMgmt == nil {
		return nil
	}
	return &SessionManagement{Method: ctx.SessionMgmt.Method, Parameters: copyParams(ctx.SessionMgmt.Params)}
}

// decodeSubConfig decodes the shared method/parameters shape of both
// sub-configs. Every problem is a diagnostic; decoding always continues.
func decodeSubConfig(value any, field string, known map[string]bool, method *string, params *map[string]string, p *progress.Progress) {
	m, ok := rawval.Mapping(value)
	if !ok {
		p.Error("%s is not a mapping: %v", field, value)
		return
	}
	for _, key := range rawval.SortedKeys(m) {
		v := m[key]
		if v == nil {
			continue
		}
		switch key {
		case "method":
			*method = rawval.String(v)
			if !known[*method] {
				p.Error("unsupported %s method %q", field, *method)
			}
		case "parameters":
			pm, ok := rawval.Mapping(v)
			if !ok {
				p.Error("%s parameters is not a mapping: %v", field, v)
				continue
			}
			out := make(map[string]string, len(pm))
			for _, pk := range rawval.SortedKeys(pm) {
				if pm[pk] == nil {
					continue
				}
				out[pk] = rawval.String(pm[pk])
			}
			*params = out
		default:
			p.Warn("unknown %s field %q", field, key)
		}
	}
}

func copyParams(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
