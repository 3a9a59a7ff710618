package endpoint

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
)

const routesJS = `export default function(app) {
  // fsgen:routes:begin
  app.use('/api/things', require('./api/thing'));
  app.use('/auth', require('./auth').default);
  // fsgen:routes:end

  app.route('/*');
}
`

func routeMerge(t *testing.T, raw string) manifest.Merge {
	t.Helper()
	name, err := naming.Normalize(raw)
	require.NoError(t, err)
	return manifest.Merge{Registry: RegistryRoutes, Key: Module(name), Line: RouteLine(name)}
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument("server/routes.js", []byte(routesJS), RegistryRoutes)
	require.NoError(t, err)

	assert.Equal(t, "  ", doc.Region.Indent)
	assert.Equal(t, []string{"api/thing"}, doc.Region.Keys())
	require.Len(t, doc.Region.Records, 2)
	assert.Equal(t, "", doc.Region.Records[1].Key, "unparseable lines are kept")

	assert.Equal(t, routesJS, string(doc.Bytes()), "untouched documents round-trip")
}

func TestApplyMerge_AppendsInOrder(t *testing.T) {
	out, changed, err := ApplyMerge("server/routes.js", []byte(routesJS), routeMerge(t, "foo"))
	require.NoError(t, err)
	assert.True(t, changed)

	out, changed, err = ApplyMerge("server/routes.js", out, routeMerge(t, "Bar"))
	require.NoError(t, err)
	assert.True(t, changed)

	s := string(out)
	foo := strings.Index(s, "  app.use('/api/foos', require('./api/foo'));\n")
	bar := strings.Index(s, "  app.use('/api/bars', require('./api/bar'));\n")
	end := strings.Index(s, "  // fsgen:routes:end")
	assert.Positive(t, foo)
	assert.Greater(t, bar, foo)
	assert.Greater(t, end, bar)
	assert.Contains(t, s, "app.use('/auth', require('./auth').default);")
	assert.True(t, strings.HasSuffix(s, "app.route('/*');\n}\n"))
}

func TestApplyMerge_IsIdempotent(t *testing.T) {
	once, _, err := ApplyMerge("server/routes.js", []byte(routesJS), routeMerge(t, "foo"))
	require.NoError(t, err)
	twice, _, err := ApplyMerge("server/routes.js", once, routeMerge(t, "Bar"))
	require.NoError(t, err)

	again, changed, err := ApplyMerge("server/routes.js", twice, routeMerge(t, "FOO"))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, string(twice), string(again))
}

func TestApplyMerge_AllRegistries(t *testing.T) {
	name, err := naming.Normalize("admin/user-profile")
	require.NoError(t, err)

	content := "init();\n// fsgen:sockets:begin\n// fsgen:sockets:end\n// fsgen:models:begin\n// fsgen:models:end\n"
	for _, m := range []manifest.Merge{
		{Registry: RegistrySockets, Key: Module(name), Line: SocketLine(name)},
		{Registry: RegistryModels, Key: Module(name), Line: ModelLine(name)},
	} {
		out, changed, err := ApplyMerge("agg.js", []byte(content), m)
		require.NoError(t, err)
		require.True(t, changed)

		doc, err := ParseDocument("agg.js", out, m.Registry)
		require.NoError(t, err)
		assert.Equal(t, []string{"api/admin/user-profile"}, doc.Region.Keys())
		content = string(out)
	}
	assert.Contains(t, content, "db.AdminUserProfile = db.sequelize.import('../api/admin/user-profile/user-profile.model');")
}

func TestApplyMerge_MissingOrBrokenRegion(t *testing.T) {
	tests := map[string]string{
		"no markers":     "export default function(app) {}\n",
		"no end":         "// fsgen:routes:begin\napp.use('/x', require('./x'));\n",
		"end first":      "// fsgen:routes:end\n// fsgen:routes:begin\n",
		"repeated begin": "// fsgen:routes:begin\n// fsgen:routes:begin\n// fsgen:routes:end\n",
		"other registry": "// fsgen:sockets:begin\n// fsgen:sockets:end\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := ApplyMerge("server/routes.js", []byte(content), routeMerge(t, "foo"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrMergeAnchorMissing))
			assert.Contains(t, err.Error(), "server/routes.js")
		})
	}
}

func TestApplyMerge_RejectsMismatchedKey(t *testing.T) {
	m := routeMerge(t, "foo")
	m.Key = "api/other"
	_, _, err := ApplyMerge("server/routes.js", []byte(routesJS), m)
	assert.Error(t, err)

	_, err = ParseDocument("x.js", []byte(routesJS), "nope")
	assert.Error(t, err)
}
