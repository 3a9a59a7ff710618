package generator

import (
	"context"
	"path/filepath"

	"github.com/fullstack-gen/fsgen/internal/apply"
	"github.com/fullstack-gen/fsgen/internal/endpoint"
	"github.com/fullstack-gen/fsgen/internal/history"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/output"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
	"github.com/fullstack-gen/fsgen/internal/templates"
)

// EndpointRequest asks for a new API endpoint in an existing project.
type EndpointRequest struct {
	// RawName is the endpoint identifier as typed ("foo/bar-baz").
	RawName string

	// Dir is the project root. Defaults to the current directory.
	Dir string

	// Config is the project's option set. When nil it is loaded from Dir.
	Config *options.OptionSet

	// Model picks the backend for the model file.
	Model options.ODM

	Force  bool
	DryRun bool
}

// GenerateEndpoint adds req.RawName to the project in req.Dir. Re-running
// it for the same name leaves every file unchanged.
func (g *Generator) GenerateEndpoint(ctx context.Context, req EndpointRequest) (*Result, error) {
	started := g.now()

	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	res := &Result{Dir: dir, Project: projectName(dir)}

	set, err := g.endpointOptions(dir, req.Config)
	if err != nil {
		return res, err
	}
	res.Options, res.ConfigReused = set, req.Config == nil

	name, err := naming.Normalize(req.RawName)
	if err != nil {
		return res, err
	}
	log := output.ProjectLogger(name.Path())

	ereq := endpoint.Request{RawName: req.RawName, Model: req.Model}
	model, err := endpoint.ChooseModel(set, ereq)
	if err != nil {
		return res, err
	}
	m, err := endpoint.Extend(set, name, ereq)
	if err != nil {
		return res, err
	}
	res.Manifest = m
	log.Debug("resolved endpoint manifest", "entries", m.Len(), "route", name.Route(endpoint.APIBase), "model", model)

	data := templates.Data{
		Project: res.Project,
		Options: set,
		Name:    name,
		Route:   name.Route(endpoint.APIBase),
		Module:  endpoint.Module(name),
		Model:   model,
	}
	render := func(e manifest.Entry) ([]byte, error) {
		d := data
		d.Path = e.Path
		return g.renderer.Render(e.TemplateID, d)
	}

	res.Apply, err = apply.Apply(ctx, dir, m, render, apply.Options{Force: req.Force, DryRun: req.DryRun})
	g.record(ctx, res, history.KindEndpoint, name.Path(), started, err)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (g *Generator) endpointOptions(dir string, cfg *options.OptionSet) (options.OptionSet, error) {
	if cfg != nil {
		return options.Canonical(*cfg)
	}
	rec, err := projectconfig.Load(dir)
	if err != nil {
		return options.OptionSet{}, err
	}
	return rec.Options, nil
}

func projectName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}
