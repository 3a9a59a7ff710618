// Package generator runs the scaffolding operations end to end: it resolves
// options, builds the manifest, renders and applies it, persists the project
// config, installs dependencies and records the run.
package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fullstack-gen/fsgen/internal/apply"
	"github.com/fullstack-gen/fsgen/internal/fileset"
	"github.com/fullstack-gen/fsgen/internal/history"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
	"github.com/fullstack-gen/fsgen/internal/runner"
	"github.com/fullstack-gen/fsgen/internal/templates"
)

// Runner executes external project commands.
type Runner interface {
	Install(ctx context.Context, dir string) (runner.Outcome, error)
	Verify(ctx context.Context, dir string, scripts []string) ([]runner.Outcome, error)
}

// Recorder persists run outcomes.
type Recorder interface {
	Record(ctx context.Context, run history.Run) (string, error)
}

// Config wires a Generator. Every field is optional.
type Config struct {
	// Baseline replaces the built-in default option set.
	Baseline *options.OptionSet

	// Runner runs install and verification commands. Without one, install
	// is skipped and verification runs fail.
	Runner Runner

	// History records runs. Without one, nothing is recorded.
	History Recorder
}

// Generator implements the fsgen operations.
type Generator struct {
	resolver *fileset.Resolver
	renderer *templates.Renderer
	baseline options.OptionSet
	runner   Runner
	history  Recorder
	now      func() time.Time
}

// New creates a Generator.
func New(cfg Config) (*Generator, error) {
	resolver, err := fileset.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("building file-set resolver: %w", err)
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	baseline := options.Defaults()
	if cfg.Baseline != nil {
		set, err := options.Canonical(*cfg.Baseline)
		if err != nil {
			return nil, fmt.Errorf("baseline options: %w", err)
		}
		baseline = set
	}

	return &Generator{
		resolver: resolver,
		renderer: renderer,
		baseline: baseline,
		runner:   cfg.Runner,
		history:  cfg.History,
		now:      time.Now,
	}, nil
}

// Baseline returns the option set absent fields inherit from.
func (g *Generator) Baseline() options.OptionSet { return g.baseline.Clone() }

// Manifest resolves the application manifest for set.
func (g *Generator) Manifest(set options.OptionSet) (*manifest.Manifest, error) {
	return g.resolver.Resolve(set)
}

// GenerateRequest asks for a new application.
type GenerateRequest struct {
	// Name is the application name. Defaults to the base name of Dir.
	Name string

	// Dir is the project root. Defaults to Name.
	Dir string

	// Options holds the explicit flag values.
	Options options.Bag

	// Prompts holds interactive answers; flag values win over them.
	Prompts options.Bag

	// ExistingConfig, when set, is used as the option set as-is.
	ExistingConfig *options.OptionSet

	// SkipConfig reuses the config stored in Dir when there is one.
	SkipConfig bool

	SkipInstall bool
	Force       bool
	DryRun      bool
}

// Result is the outcome of one operation.
type Result struct {
	Project  string
	Dir      string
	Options  options.OptionSet
	Manifest *manifest.Manifest

	// Apply lists per-entry outcomes; nil when planning failed.
	Apply *apply.Result

	// ConfigReused is true when the option set came from an existing config.
	ConfigReused bool

	// Install is the dependency install outcome, when one ran.
	Install *runner.Outcome

	// RunID identifies the history record, when one was written.
	RunID string
}

// Generate creates the application described by req.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	started := g.now()

	name, dir := req.Name, req.Dir
	if dir == "" {
		dir = name
	}
	if dir == "" {
		dir = "."
	}
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving project directory: %w", err)
		}
		name = filepath.Base(abs)
	}
	log := output.ProjectLogger(name)

	res := &Result{Project: name, Dir: dir}
	set, reused, err := g.projectOptions(dir, req)
	if err != nil {
		return res, err
	}
	res.Options, res.ConfigReused = set, reused
	if reused {
		log.Info("reusing existing project config", "file", projectconfig.FileName)
	}

	m, err := g.resolver.Resolve(set)
	if err != nil {
		return res, err
	}
	res.Manifest = m
	log.Debug("resolved manifest", "entries", m.Len(), "digest", m.Digest())

	res.Apply, err = apply.Apply(ctx, dir, m, g.render(name, set), apply.Options{Force: req.Force, DryRun: req.DryRun})
	if err != nil {
		g.record(ctx, res, history.KindProject, "", started, err)
		return res, err
	}

	if !req.DryRun {
		if err := projectconfig.Save(dir, projectconfig.Record{Options: set}); err != nil {
			g.record(ctx, res, history.KindProject, "", started, err)
			return res, err
		}

		if !req.SkipInstall && g.runner != nil {
			log.Info("installing dependencies")
			outcome, err := g.runner.Install(ctx, dir)
			res.Install = &outcome
			if err != nil {
				g.record(ctx, res, history.KindProject, "", started, err)
				return res, err
			}
		}
	}

	g.record(ctx, res, history.KindProject, "", started, nil)
	return res, nil
}

// projectOptions picks the option set: an explicit existing config, a
// reusable stored config, or the bags resolved over the baseline.
func (g *Generator) projectOptions(dir string, req GenerateRequest) (options.OptionSet, bool, error) {
	if req.ExistingConfig != nil {
		set, err := options.Canonical(*req.ExistingConfig)
		if err != nil {
			return options.OptionSet{}, false, err
		}
		return set, true, nil
	}

	if req.SkipConfig && projectconfig.Exists(dir) {
		rec, err := projectconfig.Load(dir)
		if err != nil {
			return options.OptionSet{}, false, err
		}
		return rec.Options, true, nil
	}

	set, err := options.Resolve(options.Merge(req.Options, req.Prompts), g.baseline)
	if err != nil {
		return options.OptionSet{}, false, err
	}
	return set, false, nil
}

func (g *Generator) render(project string, set options.OptionSet) apply.RenderFunc {
	return func(e manifest.Entry) ([]byte, error) {
		return g.renderer.Render(e.TemplateID, templates.Data{
			Project: project,
			Path:    e.Path,
			Options: set,
		})
	}
}

// record writes the run to history. Recording failures are logged and
// never change the operation's outcome.
func (g *Generator) record(ctx context.Context, res *Result, kind, subject string, started time.Time, opErr error) {
	if g.history == nil {
		return
	}

	run := history.Run{
		Kind:       kind,
		Project:    res.Dir,
		Subject:    subject,
		Status:     history.StatusSucceeded,
		StartedAt:  started,
		FinishedAt: g.now(),
	}
	if abs, err := filepath.Abs(res.Dir); err == nil {
		run.Project = abs
	}
	if res.Manifest != nil {
		run.Digest = res.Manifest.Digest()
	}
	if opErr != nil {
		run.Status = history.StatusFailed
		run.Error = firstLine(opErr.Error())
	}
	if res.Apply != nil {
		for i, e := range res.Apply.Entries {
			run.Entries = append(run.Entries, history.Entry{
				Seq:    i + 1,
				Path:   e.Entry.Path,
				Kind:   string(e.Entry.Kind),
				Status: string(e.Status),
			})
		}
	}

	id, err := g.history.Record(ctx, run)
	if err != nil {
		output.Warn("could not record run in history", "error", err)
		return
	}
	res.RunID = id
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
