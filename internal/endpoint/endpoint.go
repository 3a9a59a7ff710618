// Package endpoint computes what adding an API resource to a generated
// project creates and which aggregate files it registers in.
package endpoint

import (
	"fmt"
	"slices"
	"strings"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/templates"
)

// Aggregate files holding registry regions.
const (
	RoutesFile  = "server/routes.js"
	SocketsFile = "server/config/socketio.js"
	ModelsFile  = "server/sqldb/index.js"
)

const (
	// APIBase is the URL prefix of every endpoint route.
	APIBase = "/api"

	// TemplatePrefix prefixes the template ID of every endpoint file.
	TemplatePrefix = "endpoint/"

	apiDir = "server/api/"
)

// Request asks for one endpoint.
type Request struct {
	// RawName is the endpoint identifier as typed ("foo/bar-baz").
	RawName string

	// Model picks the backend for the endpoint's model file. Empty selects
	// the first configured backend.
	Model options.ODM
}

// Module is the endpoint's module path below server/ ("api/foo/baz").
// It is the idempotency key of every registration.
func Module(name naming.Name) string {
	return "api/" + name.Path()
}

// Dir is the directory holding the endpoint's files.
func Dir(name naming.Name) string {
	return apiDir + name.Path()
}

// ChooseModel resolves the backend used for the endpoint model: the
// requested one, or the first configured backend in canonical order. It is
// empty when the project has no backend.
func ChooseModel(set options.OptionSet, req Request) (options.ODM, error) {
	if req.Model == "" {
		for _, odm := range options.ODMs {
			if set.HasODM(odm) {
				return odm, nil
			}
		}
		return "", nil
	}
	if !slices.Contains(set.ODMs, req.Model) {
		configured := make([]string, len(set.ODMs))
		for i, o := range set.ODMs {
			configured[i] = string(o)
		}
		return "", oerrors.NewValidationError(
			fmt.Sprintf("backend %q is not configured for this project", req.Model),
			"", "model",
			fmt.Sprintf("Configured backends: [%s].", strings.Join(configured, ", ")))
	}
	return req.Model, nil
}

// RouteLine is the routes registration of name.
func RouteLine(name naming.Name) string {
	return fmt.Sprintf("app.use('%s', require('./%s'));", name.Route(APIBase), Module(name))
}

// SocketLine is the sockets registration of name.
func SocketLine(name naming.Name) string {
	return fmt.Sprintf("require('../%s/%s.socket').register(socket);", Module(name), name.FileBase)
}

// ModelLine is the models registration of name. The property carries the
// parent path so nested resources with the same last segment do not clash.
func ModelLine(name naming.Name) string {
	return fmt.Sprintf("db.%s = db.sequelize.import('../%s/%s.model');", name.QualifiedTypeName(), Module(name), name.FileBase)
}

// Extend returns the manifest for adding name to a project configured with
// set: creations under server/api/<parents>/<fileBase>/ followed by the
// registry merges. Nesting only changes creation paths and the route; the
// aggregate files are the same for every endpoint.
func Extend(set options.OptionSet, name naming.Name, req Request) (*manifest.Manifest, error) {
	model, err := ChooseModel(set, req)
	if err != nil {
		return nil, err
	}

	dir := Dir(name) + "/"
	fb := name.FileBase
	base := []string{"endpoint"}

	creations := []manifest.Entry{
		{Path: dir + "index.js", TemplateID: TemplatePrefix + "index.js", Tags: base},
		{Path: dir + "index.spec.js", TemplateID: templates.WithVariant(TemplatePrefix+"index.spec.js", string(set.Testing)), Tags: base},
		{Path: dir + fb + ".controller.js", TemplateID: TemplatePrefix + "name.controller.js", Tags: base},
		{Path: dir + fb + ".integration.js", TemplateID: TemplatePrefix + "name.integration.js", Tags: base},
	}
	if set.HasModels() {
		tags := []string{"endpoint", "models"}
		creations = append(creations,
			manifest.Entry{Path: dir + fb + ".model.js", TemplateID: templates.WithVariant(TemplatePrefix+"name.model.js", string(model)), Tags: tags},
			manifest.Entry{Path: dir + fb + ".events.js", TemplateID: TemplatePrefix + "name.events.js", Tags: tags},
		)
	}
	if set.WS {
		creations = append(creations, manifest.Entry{
			Path:       dir + fb + ".socket.js",
			TemplateID: TemplatePrefix + "name.socket.js",
			Tags:       []string{"endpoint", "ws"},
		})
	}

	key := Module(name)
	merges := []manifest.Entry{merge(RoutesFile, RegistryRoutes, key, RouteLine(name))}
	if set.WS {
		merges = append(merges, merge(SocketsFile, RegistrySockets, key, SocketLine(name)))
	}
	if model == options.Sequelize {
		merges = append(merges, merge(ModelsFile, RegistryModels, key, ModelLine(name)))
	}

	m := manifest.New()
	for _, e := range append(creations, merges...) {
		if e.Kind == "" {
			e.Kind = manifest.KindCreate
		}
		if err := m.Add(e); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func merge(path, registry, key, line string) manifest.Entry {
	return manifest.Entry{
		Path: path,
		Tags: []string{registry},
		Kind: manifest.KindMerge,
		Merge: &manifest.Merge{
			Registry: registry,
			Key:      key,
			Line:     line,
		},
	}
}
