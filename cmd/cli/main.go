package main

import (
	"fmt"
	"os"

	"github.com/scopeforge/scopeforge/pkg/config"
	"github.com/scopeforge/scopeforge/pkg/plan"
	"github.com/scopeforge/scopeforge/pkg/progress"
	"github.com/scopeforge/scopeforge/pkg/scope"
	"github.com/scopeforge/scopeforge/pkg/session"
	"github.com/scopeforge/scopeforge/pkg/ui"
	"github.com/scopeforge/scopeforge/pkg/users"
	"github.com/scopeforge/scopeforge/pkg/vars"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		exitWithError("%v", err)
	}

	if cfg.NoColor || !ui.StdoutIsTerminal() {
		ui.DisableColor()
	}

	pl, err := plan.LoadFile(cfg.PlanFile)
	if err != nil {
		exitWithError("%v", err)
	}

	// CLI -var overrides take precedence over the plan's own vars.
	resolver := buildResolver(pl, cfg.Vars)

	switch cfg.Command {
	case config.CmdValidate:
		runValidate(cfg, pl)
	case config.CmdApply:
		runApply(cfg, pl, resolver)
	case config.CmdExport:
		runExport(cfg, pl, resolver)
	}
}

func buildResolver(pl *plan.Plan, overrides map[string]string) vars.Resolver {
	if len(overrides) == 0 {
		return pl.Env.Resolver()
	}
	merged := make(map[string]string, len(pl.Env.Vars)+len(overrides))
	for k, v := range pl.Env.Vars {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return vars.NewMapResolver(merged)
}

// runValidate loads every context from the plan and reports the accumulated
// diagnostics without touching a session.
func runValidate(cfg *config.Config, pl *plan.Plan) {
	p := progress.New()
	configs := pl.Env.LoadContexts(p)

	chatty := cfg.Verbose || pl.Env.Parameters.ProgressToStdout
	for _, c := range configs {
		if chatty && c.Name != "" {
			ui.Printf("%s %s\n", ui.SuccessStyle.Render("checked"), ui.NameStyle.Render(c.Name))
		}
	}

	reportAndExit(cfg, pl, p)
}

// runApply materializes every context into a fresh session and reports what
// was built alongside the diagnostics.
func runApply(cfg *config.Config, pl *plan.Plan, resolver vars.Resolver) {
	p := progress.New()
	configs := pl.Env.LoadContexts(p)

	store := session.NewStore()
	registry := users.NewRegistry()

	chatty := cfg.Verbose || pl.Env.Parameters.ProgressToStdout
	for _, c := range configs {
		live := c.Materialize(store, resolver, registry, p)
		if !chatty {
			continue
		}
		identities := registry.ForContext(live.Name())
		ui.Printf("%s %s  %s\n",
			ui.SuccessStyle.Render("applied"),
			ui.NameStyle.Render(live.Name()),
			ui.MutedStyle.Render(fmt.Sprintf("(%d includes, %d excludes, %d users)",
				len(live.IncludePatterns()), len(live.ExcludePatterns()), len(identities))))
	}

	reportAndExit(cfg, pl, p)
}

// runExport materializes the plan's contexts, snapshots the live result,
// and writes it back out as plan YAML or JSON. The round trip makes drift
// between the authored plan and what a session actually holds visible.
func runExport(cfg *config.Config, pl *plan.Plan, resolver vars.Resolver) {
	p := progress.New()
	configs := pl.Env.LoadContexts(p)

	store := session.NewStore()
	registry := users.NewRegistry()

	snapshots := make([]*scope.Config, 0, len(configs))
	for _, c := range configs {
		live := c.Materialize(store, resolver, registry, p)
		snapshots = append(snapshots, scope.Snapshot(live, registry))
	}

	var out []byte
	var err error
	switch cfg.Format {
	case "json":
		out, err = plan.ExportJSON(snapshots, pl.Env.Vars)
	default:
		out, err = plan.Export(snapshots, pl.Env.Vars)
	}
	if err != nil {
		exitWithError("%v", err)
	}

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, out, 0o644); err != nil {
			exitWithError("failed to write output: %v", err)
		}
		ui.Printf("%s %s\n", ui.SuccessStyle.Render("exported"), cfg.OutputFile)
	} else {
		os.Stdout.Write(out)
	}

	reportAndExit(cfg, pl, p)
}

// printDiagnostics renders accumulated errors and warnings to stderr.
func printDiagnostics(p *progress.Progress) {
	for _, msg := range p.Errors() {
		ui.Fprintf(os.Stderr, "%s %s\n", ui.ErrorStyle.Render("error:"), msg)
	}
	for _, msg := range p.Warnings() {
		ui.Fprintf(os.Stderr, "%s %s\n", ui.WarningStyle.Render("warning:"), msg)
	}
}

// reportAndExit prints diagnostics and exits non-zero when the plan's
// parameters (or -strict) say the run should fail.
func reportAndExit(cfg *config.Config, pl *plan.Plan, p *progress.Progress) {
	printDiagnostics(p)

	params := pl.Env.Parameters
	failOnError := params.FailOnError || cfg.Command == config.CmdValidate
	failOnWarning := params.FailOnWarning || cfg.Strict

	switch {
	case failOnError && p.HasErrors():
		os.Exit(1)
	case failOnWarning && p.HasWarnings():
		os.Exit(2)
	}

	if !p.HasErrors() && !p.HasWarnings() {
		ui.Fprintf(os.Stderr, "%s\n", ui.SuccessStyle.Render("ok"))
	}
	os.Exit(0)
}

// exitWithError prints a formatted error message and exits with code 1.
func exitWithError(format string, args ...any) {
	ui.Fprintf(os.Stderr, "%s %s\n", ui.ErrorStyle.Render("error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
