// Package config parses command line options for the scopeforge CLI.
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Commands understood by the CLI.
const (
	CmdValidate = "validate"
	CmdApply    = "apply"
	CmdExport   = "export"
)

// Config holds all CLI options.
type Config struct {
	// Command is one of CmdValidate, CmdApply, CmdExport.
	Command string

	// PlanFile is the automation plan to load.
	PlanFile string

	// Vars are -var key=value overrides layered on top of the plan's vars.
	Vars map[string]string

	// Output settings
	OutputFile string // empty = stdout
	Format     string // yaml or json

	// Strict fails the run on warnings as well as errors.
	Strict bool

	NoColor bool
	Verbose bool
}

// varFlag collects repeated -var key=value pairs.
type varFlag map[string]string

func (v varFlag) String() string {
	pairs := make([]string, 0, len(v))
	for k, val := range v {
		pairs = append(pairs, k+"="+val)
	}
	return strings.Join(pairs, ",")
}

func (v varFlag) Set(s string) error {
	key, val, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v[key] = val
	return nil
}

// ParseFlags parses args (os.Args[1:]) and returns the Config. The first
// non-flag argument selects the command; it defaults to validate.
func ParseFlags(args []string) (*Config, error) {
	cfg := &Config{
		Command: CmdValidate,
		Vars:    make(map[string]string),
	}

	command := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("scopeforge", flag.ContinueOnError)

	fs.StringVar(&cfg.PlanFile, "plan", "", "Automation plan file (YAML)")
	fs.StringVar(&cfg.PlanFile, "p", "", "Plan file (alias)")
	fs.Var(varFlag(cfg.Vars), "var", "Variable override key=value (repeatable)")
	fs.StringVar(&cfg.OutputFile, "output", "", "Output file path (default stdout)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Output file (alias)")
	fs.StringVar(&cfg.Format, "format", "yaml", "Output format: yaml, json")
	fs.BoolVar(&cfg.Strict, "strict", false, "Treat warnings as failures")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.NoColor, "nc", false, "No color (alias)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if command != "" {
		cfg.Command = command
	}
	switch cfg.Command {
	case CmdValidate, CmdApply, CmdExport:
	default:
		return nil, fmt.Errorf("unknown command %q: use validate, apply, or export", cfg.Command)
	}

	if cfg.Format != "yaml" && cfg.Format != "json" {
		return nil, fmt.Errorf("unknown format %q: use yaml or json", cfg.Format)
	}

	if cfg.PlanFile == "" {
		return nil, fmt.Errorf("plan required: use -plan <file>")
	}

	return cfg, nil
}
