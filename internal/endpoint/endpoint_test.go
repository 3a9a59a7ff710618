package endpoint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
)

func extend(t *testing.T, set options.OptionSet, raw string, model options.ODM) *manifest.Manifest {
	t.Helper()
	name, err := naming.Normalize(raw)
	require.NoError(t, err)
	m, err := Extend(set, name, Request{RawName: raw, Model: model})
	require.NoError(t, err)
	return m
}

func TestExtend_Defaults(t *testing.T) {
	m := extend(t, options.Defaults(), "foo", "")

	assert.Equal(t, []string{
		"server/api/foo/index.js",
		"server/api/foo/index.spec.js",
		"server/api/foo/foo.controller.js",
		"server/api/foo/foo.integration.js",
		"server/api/foo/foo.model.js",
		"server/api/foo/foo.events.js",
		"server/api/foo/foo.socket.js",
		RoutesFile,
		SocketsFile,
	}, m.Paths())

	e, _ := m.Get("server/api/foo/index.spec.js")
	assert.Equal(t, "endpoint/index.spec.mocha.js", e.TemplateID)
	e, _ = m.Get("server/api/foo/foo.model.js")
	assert.Equal(t, "endpoint/name.model.mongoose.js", e.TemplateID)

	routes, _ := m.Get(RoutesFile)
	require.NotNil(t, routes.Merge)
	assert.Equal(t, manifest.KindMerge, routes.Kind)
	assert.Equal(t, manifest.Merge{
		Registry: RegistryRoutes,
		Key:      "api/foo",
		Line:     "app.use('/api/foos', require('./api/foo'));",
	}, *routes.Merge)

	sockets, _ := m.Get(SocketsFile)
	assert.Equal(t, "require('../api/foo/foo.socket').register(socket);", sockets.Merge.Line)
}

func TestExtend_TwoEndpointsDoNotCollide(t *testing.T) {
	foo := extend(t, options.Defaults(), "foo", "")
	bar := extend(t, options.Defaults(), "Bar", "")

	fooPaths := sets.New[string]()
	for _, e := range foo.Creations() {
		fooPaths.Insert(e.Path)
	}
	for _, e := range bar.Creations() {
		assert.False(t, fooPaths.Has(e.Path), e.Path)
	}

	fr, _ := foo.Get(RoutesFile)
	br, _ := bar.Get(RoutesFile)
	assert.NotEqual(t, fr.Merge.Key, br.Merge.Key)
	assert.Equal(t, "app.use('/api/bars', require('./api/bar'));", br.Merge.Line)
}

func TestExtend_Nested(t *testing.T) {
	plain := extend(t, options.Defaults(), "baz", "")
	nested := extend(t, options.Defaults(), "foo/baz", "")

	pc, nc := plain.Creations(), nested.Creations()
	require.Len(t, nc, len(pc))
	for i := range pc {
		assert.Equal(t, "server/api/foo/baz/"+pc[i].Path[len("server/api/baz/"):], nc[i].Path)
	}

	r, _ := nested.Get(RoutesFile)
	assert.Equal(t, "api/foo/baz", r.Merge.Key)
	assert.Equal(t, "app.use('/api/foo/bazs', require('./api/foo/baz'));", r.Merge.Line)

	// nesting never changes the aggregate files
	assert.Equal(t, pathsOf(plain.Merges()), pathsOf(nested.Merges()))
}

func TestExtend_HyphenatedName(t *testing.T) {
	set := options.Defaults()
	set.ODMs = []options.ODM{options.Sequelize}

	m := extend(t, set, "foo-boo", "")

	_, ok := m.Get("server/api/foo-boo/foo-boo.controller.js")
	assert.True(t, ok)

	models, ok := m.Get(ModelsFile)
	require.True(t, ok)
	assert.Equal(t, "db.FooBoo = db.sequelize.import('../api/foo-boo/foo-boo.model');", models.Merge.Line)
}

func TestExtend_OptionalFiles(t *testing.T) {
	set := options.Defaults()
	set.ODMs = []options.ODM{}
	set.Auth = false
	set.WS = false
	set.Testing = options.Jasmine
	set.Chai = options.Expect

	m := extend(t, set, "foo", "")
	assert.Equal(t, []string{
		"server/api/foo/index.js",
		"server/api/foo/index.spec.js",
		"server/api/foo/foo.controller.js",
		"server/api/foo/foo.integration.js",
		RoutesFile,
	}, m.Paths())

	e, _ := m.Get("server/api/foo/index.spec.js")
	assert.Equal(t, "endpoint/index.spec.jasmine.js", e.TemplateID)
}

func TestExtend_ModelChoice(t *testing.T) {
	set := options.Defaults()
	set.ODMs = []options.ODM{options.Mongoose, options.Sequelize}

	m := extend(t, set, "foo", "")
	_, hasModels := m.Get(ModelsFile)
	assert.False(t, hasModels, "mongoose is the default backend")

	m = extend(t, set, "foo", options.Sequelize)
	e, _ := m.Get("server/api/foo/foo.model.js")
	assert.Equal(t, "endpoint/name.model.sequelize.js", e.TemplateID)
	_, hasModels = m.Get(ModelsFile)
	assert.True(t, hasModels)

	name, _ := naming.Normalize("foo")
	_, err := Extend(options.Defaults(), name, Request{Model: options.Sequelize})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestExtend_BackendOrderDoesNotMatter(t *testing.T) {
	a := options.Defaults()
	a.ODMs = []options.ODM{options.Mongoose, options.Sequelize}
	b := options.Defaults()
	b.ODMs = []options.ODM{options.Sequelize, options.Mongoose}

	ma := extend(t, a, "foo", "")
	mb := extend(t, b, "foo", "")
	assert.Equal(t, ma.Entries(), mb.Entries())
	_, hasModels := mb.Get(ModelsFile)
	assert.False(t, hasModels)
}

func TestExtend_NestedModelsDoNotClash(t *testing.T) {
	set := options.Defaults()
	set.ODMs = []options.ODM{options.Sequelize}

	foo, ok := extend(t, set, "foo/baz", "").Get(ModelsFile)
	require.True(t, ok)
	bar, ok := extend(t, set, "bar/baz", "").Get(ModelsFile)
	require.True(t, ok)

	assert.Equal(t, "db.FooBaz = db.sequelize.import('../api/foo/baz/baz.model');", foo.Merge.Line)
	assert.Equal(t, "db.BarBaz = db.sequelize.import('../api/bar/baz/baz.model');", bar.Merge.Line)
	assert.NotEqual(t, foo.Merge.Key, bar.Merge.Key)
}

func pathsOf(entries []manifest.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
