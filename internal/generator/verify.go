package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fullstack-gen/fsgen/internal/apply"
	"github.com/fullstack-gen/fsgen/internal/endpoint"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/history"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
	"github.com/fullstack-gen/fsgen/internal/runner"
)

// DefaultIgnore lists tree entries that verification never reports.
var DefaultIgnore = []string{"node_modules/", ".git/", "dist/", ".tmp/", runner.EnvFile}

// VerifyRequest asks for a project check.
type VerifyRequest struct {
	Dir string

	// Ignore adds paths, or directory prefixes ending in "/", to
	// DefaultIgnore.
	Ignore []string

	// Scripts are package scripts run after the tree check, in order.
	Scripts []string
}

// VerifyReport is the outcome of a project check.
type VerifyReport struct {
	Dir     string
	Options options.OptionSet

	// Endpoints holds the module paths of the endpoints added to the
	// application, as found in the routes registry.
	Endpoints []string

	Tree   apply.TreeDiff
	Checks []runner.Outcome
	RunID  string
}

// OK reports whether the tree matched and every script passed.
func (r *VerifyReport) OK() bool {
	if !r.Tree.Empty() {
		return false
	}
	for _, c := range r.Checks {
		if c.Err != nil {
			return false
		}
	}
	return true
}

// Verify compares the project tree in req.Dir with the manifests its stored
// config and registered endpoints imply, then runs req.Scripts. A tree
// mismatch is reported, not returned as an error; scripts only run on a
// matching tree.
func (g *Generator) Verify(ctx context.Context, req VerifyRequest) (*VerifyReport, error) {
	started := g.now()

	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	report := &VerifyReport{Dir: dir}

	rec, err := projectconfig.Load(dir)
	if err != nil {
		return report, err
	}
	report.Options = rec.Options

	app, err := g.resolver.Resolve(rec.Options)
	if err != nil {
		return report, err
	}
	manifests := []*manifest.Manifest{app}

	keys, err := registeredEndpoints(dir)
	if err != nil {
		return report, err
	}
	for _, key := range keys {
		name, err := naming.Normalize(strings.TrimPrefix(key, "api/"))
		if err != nil {
			return report, fmt.Errorf("registered endpoint %q: %w", key, err)
		}
		// Endpoints shipped with the application are part of its manifest.
		if _, ok := app.Get(endpoint.Dir(name) + "/index.js"); ok {
			continue
		}
		m, err := endpoint.Extend(rec.Options, name, endpoint.Request{RawName: name.Raw})
		if err != nil {
			return report, fmt.Errorf("registered endpoint %q: %w", key, err)
		}
		manifests = append(manifests, m)
		report.Endpoints = append(report.Endpoints, key)
	}

	report.Tree, err = apply.VerifyTree(dir, append(append([]string{}, DefaultIgnore...), req.Ignore...), manifests...)
	if err != nil {
		return report, err
	}

	var runErr error
	if report.Tree.Empty() && len(req.Scripts) > 0 {
		if g.runner == nil {
			return report, errors.New("no command runner configured")
		}
		report.Checks, runErr = g.runner.Verify(ctx, dir, req.Scripts)
	}

	res := &Result{Dir: dir, Options: rec.Options, Manifest: app}
	status := runErr
	if status == nil && !report.Tree.Empty() {
		status = fmt.Errorf("tree mismatch: %d missing, %d extra", len(report.Tree.Missing), len(report.Tree.Extra))
	}
	g.record(ctx, res, history.KindVerify, strings.Join(req.Scripts, ","), started, status)
	report.RunID = res.RunID

	return report, runErr
}

// registeredEndpoints returns the keys of the routes registry. A project
// without a routes file has no endpoints.
func registeredEndpoints(dir string) ([]string, error) {
	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(endpoint.RoutesFile)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, oerrors.NewIOError("reading routes registry", endpoint.RoutesFile, err)
	}
	doc, err := endpoint.ParseDocument(endpoint.RoutesFile, content, endpoint.RegistryRoutes)
	if err != nil {
		return nil, err
	}
	return doc.Region.Keys(), nil
}
