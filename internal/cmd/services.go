package cmd

import (
	"fmt"

	"github.com/fullstack-gen/fsgen/internal/config"
	"github.com/fullstack-gen/fsgen/internal/generator"
	"github.com/fullstack-gen/fsgen/internal/history"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
	"github.com/fullstack-gen/fsgen/internal/runner"
)

// newRunner builds the command runner from the runner config.
func newRunner(cfg *config.Config) *runner.Runner {
	policy := runner.DefaultPolicy()
	if cfg.Runner.Attempts > 0 {
		policy.Attempts = cfg.Runner.Attempts
	}
	if cfg.Runner.BaseDelay > 0 {
		policy.BaseDelay = cfg.Runner.BaseDelay
	}
	return runner.New(runner.Options{
		PackageManager: cfg.Runner.PackageManager,
		Policy:         policy,
		Timeout:        cfg.Runner.Timeout,
		Spinner:        !verboseFlag,
	})
}

// openHistory opens the run ledger. It returns nil when history is disabled
// or the database cannot be opened; generation never depends on it.
func openHistory(cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	path, err := config.ExpandPath(cfg.History.Path)
	if err != nil {
		output.Warn("history disabled", "error", err)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		output.Warn("history disabled", "path", path, "error", err)
		return nil
	}
	return store
}

// newGenerator wires a generator from the loaded configuration. The returned
// function releases the history store.
func newGenerator() (*generator.Generator, func(), error) {
	cfg := GetConfig()

	baseline, err := cfg.Baseline()
	if err != nil {
		return nil, nil, fmt.Errorf("config defaults: %w", err)
	}

	gc := generator.Config{
		Baseline: &baseline,
		Runner:   newRunner(cfg),
	}
	closeFn := func() {}
	if store := openHistory(cfg); store != nil {
		gc.History = store
		closeFn = func() {
			if err := store.Close(); err != nil {
				output.Debug("closing history", "error", err)
			}
		}
	}

	g, err := generator.New(gc)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return g, closeFn, nil
}

// newPlanner builds a generator for read-only commands: no runner and no
// history.
func newPlanner() (*generator.Generator, error) {
	baseline, err := GetConfig().Baseline()
	if err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return generator.New(generator.Config{Baseline: &baseline})
}

// projectOptions resolves bag over the options stored in project, or over
// the generator baseline when project is empty.
func projectOptions(g *generator.Generator, project string, bag options.Bag) (options.OptionSet, error) {
	base := g.Baseline()
	if project != "" {
		rec, err := projectconfig.Load(project)
		if err != nil {
			return options.OptionSet{}, err
		}
		base = rec.Options
	}
	return options.Resolve(bag, base)
}
