// Package progress provides an accumulating diagnostics sink for scope
// loading, validation and materialization.
//
// Shape and validation problems are never returned as errors; they are
// recorded here and the caller inspects the sink after the call returns.
// Recording a diagnostic never drops or rewrites the data that triggered it.
package progress

import (
	"fmt"

	"github.com/scopeforge/scopeforge/pkg/jsonutil"
)

// Progress accumulates error and warning messages. The zero value is not
// usable; create one with New. Not safe for concurrent use.
type Progress struct {
	errors   []string
	warnings []string
}

// New returns an empty diagnostics sink.
func New() *Progress {
	return &Progress{}
}

// Error records an error-severity diagnostic. The data that triggered it is
// retained by the caller; an error only signals that it is invalid.
func (p *Progress) Error(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

// Warn records a warning-severity diagnostic (deprecated usage, unknown
// keys, skipped optional work).
func (p *Progress) Warn(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error diagnostics were recorded.
func (p *Progress) HasErrors() bool {
	return len(p.errors) > 0
}

// HasWarnings reports whether any warning diagnostics were recorded.
func (p *Progress) HasWarnings() bool {
	return len(p.warnings) > 0
}

// Errors returns a copy of the recorded error messages in order.
func (p *Progress) Errors() []string {
	out := make([]string, len(p.errors))
	copy(out, p.errors)
	return out
}

// Warnings returns a copy of the recorded warning messages in order.
func (p *Progress) Warnings() []string {
	out := make([]string, len(p.warnings))
	copy(out, p.warnings)
	return out
}

// Report is the serializable view of a sink, for machine-readable output.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Valid    bool     `json:"valid"`
}

// Report returns the current diagnostics as a Report. Valid is true when no
// errors were recorded; warnings alone do not invalidate a run.
func (p *Progress) Report() Report {
	return Report{
		Errors:   p.Errors(),
		Warnings: p.Warnings(),
		Valid:    !p.HasErrors(),
	}
}

// ToJSON returns the report as indented JSON.
func (r Report) ToJSON() ([]byte, error) {
	return jsonutil.MarshalIndent(r, "", "  ")
}
