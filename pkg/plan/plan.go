// Package plan loads automation plan files. A plan's env section declares
// the scope contexts to materialize, the variables available to ${...}
// placeholders, and the parameters controlling how strictly diagnostics are
// treated.
package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scopeforge/scopeforge/pkg/jsonutil"
	"github.com/scopeforge/scopeforge/pkg/progress"
	"github.com/scopeforge/scopeforge/pkg/scope"
	"github.com/scopeforge/scopeforge/pkg/vars"
)

// Plan is a parsed automation plan file.
type Plan struct {
	Env Environment `yaml:"env" json:"env"`
}

// Environment is the plan's env section.
type Environment struct {
	// Contexts are the raw scope mappings, decoded loosely so the scope
	// loader can diagnose their shape itself.
	Contexts []map[string]any `yaml:"contexts" json:"contexts"`

	// Vars feed the ${...} resolver. OS environment variables act as a
	// fallback for names not defined here.
	Vars map[string]string `yaml:"vars,omitempty" json:"vars,omitempty"`

	Parameters Parameters `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Parameters control how a runner treats accumulated diagnostics.
type Parameters struct {
	FailOnError      bool `yaml:"failOnError,omitempty" json:"failOnError,omitempty"`
	FailOnWarning    bool `yaml:"failOnWarning,omitempty" json:"failOnWarning,omitempty"`
	ProgressToStdout bool `yaml:"progressToStdout,omitempty" json:"progressToStdout,omitempty"`
}

// LoadFile reads and parses a plan from path.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data)
}

// Parse parses a plan from YAML data.
func Parse(data []byte) (*Plan, error) {
	var pl Plan
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &pl, nil
}

// Resolver builds the variable resolver for this environment: plan vars
// first, then the process environment.
func (e *Environment) Resolver() vars.Resolver {
	return vars.NewMapResolver(e.Vars)
}

// LoadContexts runs every raw context mapping through the scope loader.
// An env without contexts is an error; all other problems surface from the
// loader itself. The returned slice parallels the contexts list.
func (e *Environment) LoadContexts(p *progress.Progress) []*scope.Config {
	if len(e.Contexts) == 0 {
		p.Error("env defines no contexts")
		return nil
	}
	configs := make([]*scope.Config, 0, len(e.Contexts))
	for _, raw := range e.Contexts {
		configs = append(configs, scope.Load(raw, p))
	}
	return configs
}

// exportDoc is the marshal shape for Export: scope.Config carries the raw
// key schema in its tags, so snapshots serialize back to the authored form.
type exportDoc struct {
	Env struct {
		Contexts []*scope.Config   `yaml:"contexts" json:"contexts"`
		Vars     map[string]string `yaml:"vars,omitempty" json:"vars,omitempty"`
	} `yaml:"env" json:"env"`
}

// Export renders configs (typically snapshots of live contexts) back into
// plan YAML.
func Export(configs []*scope.Config, planVars map[string]string) ([]byte, error) {
	var doc exportDoc
	doc.Env.Contexts = configs
	doc.Env.Vars = planVars
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	return out, nil
}

// ExportJSON is Export with JSON output.
func ExportJSON(configs []*scope.Config, planVars map[string]string) ([]byte, error) {
	var doc exportDoc
	doc.Env.Contexts = configs
	doc.Env.Vars = planVars
	out, err := jsonutil.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	return out, nil
}
