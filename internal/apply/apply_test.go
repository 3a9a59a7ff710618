package apply

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack-gen/fsgen/internal/endpoint"
	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
	"github.com/fullstack-gen/fsgen/internal/testutil"
)

const routesJS = "export default function(app) {\n  // fsgen:routes:begin\n  app.use('/api/things', require('./api/thing'));\n  // fsgen:routes:end\n}\n"

func render(e manifest.Entry) ([]byte, error) {
	if e.Path == endpoint.RoutesFile {
		return []byte(routesJS), nil
	}
	return []byte("content of " + e.Path + "\n"), nil
}

func appManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m := manifest.New()
	for _, p := range []string{"package.json", "server/index.js", endpoint.RoutesFile, "client/app/app.js"} {
		require.NoError(t, m.Add(manifest.Entry{Path: p, Tags: []string{"base"}}))
	}
	return m
}

func endpointManifest(t *testing.T, raw string) *manifest.Manifest {
	t.Helper()
	set := options.Defaults()
	set.WS = false
	set.ODMs = []options.ODM{}
	set.Auth = false
	name, err := naming.Normalize(raw)
	require.NoError(t, err)
	m, err := endpoint.Extend(set, name, endpoint.Request{RawName: raw})
	require.NoError(t, err)
	return m
}

func TestApply_CreatesAndVerifies(t *testing.T) {
	root := t.TempDir()
	m := appManifest(t)

	res, err := Apply(context.Background(), root, m, render, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count(StatusCreated))
	assert.True(t, res.Changed())

	assert.Equal(t, "content of server/index.js\n", testutil.ReadFile(t, root, "server/index.js"))

	require.NoError(t, projectconfig.Save(root, projectconfig.Record{Options: options.Defaults()}))
	diff, err := VerifyTree(root, nil, m)
	require.NoError(t, err)
	assert.True(t, diff.Empty(), "%+v", diff)
}

func TestApply_ReapplyIsUnchanged(t *testing.T) {
	root := t.TempDir()
	m := appManifest(t)
	_, err := Apply(context.Background(), root, m, render, Options{})
	require.NoError(t, err)

	res, err := Apply(context.Background(), root, m, render, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count(StatusUnchanged))
	assert.False(t, res.Changed())
}

func TestApply_ConflictAbortsBeforeAnyWrite(t *testing.T) {
	root := t.TempDir()
	m := appManifest(t)
	_, err := Apply(context.Background(), root, m, render, Options{})
	require.NoError(t, err)

	testutil.WriteFile(t, root, "client/app/app.js", "hand edited\n")
	require.NoError(t, os.Remove(filepath.Join(root, "package.json")))

	_, err = Apply(context.Background(), root, m, render, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrDuplicateOutputPath))
	assert.Contains(t, err.Error(), "client/app/app.js")
	assert.NoFileExists(t, filepath.Join(root, "package.json"))

	res, err := Apply(context.Background(), root, m, render, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count(StatusOverwritten))
	assert.Equal(t, 1, res.Count(StatusCreated))
	assert.Equal(t, "content of client/app/app.js\n", testutil.ReadFile(t, root, "client/app/app.js"))
}

func TestApply_DryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	res, err := Apply(context.Background(), root, appManifest(t), render, Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 4, res.Count(StatusCreated))
	assert.Empty(t, testutil.ListFiles(t, root))
}

func TestApply_EndpointMergesAreIdempotent(t *testing.T) {
	root := t.TempDir()
	_, err := Apply(context.Background(), root, appManifest(t), render, Options{})
	require.NoError(t, err)

	foo := endpointManifest(t, "foo")
	res, err := Apply(context.Background(), root, foo, render, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count(StatusCreated))
	assert.Equal(t, 1, res.Count(StatusMerged))

	bar := endpointManifest(t, "Bar")
	_, err = Apply(context.Background(), root, bar, render, Options{})
	require.NoError(t, err)
	afterBar := testutil.ReadFile(t, root, endpoint.RoutesFile)
	assert.Contains(t, afterBar, "app.use('/api/foos', require('./api/foo'));")
	assert.Contains(t, afterBar, "app.use('/api/bars', require('./api/bar'));")

	res, err = Apply(context.Background(), root, foo, render, Options{})
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, afterBar, testutil.ReadFile(t, root, endpoint.RoutesFile))

	diff, err := VerifyTree(root, nil, appManifest(t), foo, bar)
	require.NoError(t, err)
	assert.True(t, diff.Empty(), "%+v", diff)
}

func TestApply_MergeFailures(t *testing.T) {
	t.Run("aggregate file missing", func(t *testing.T) {
		root := t.TempDir()
		_, err := Apply(context.Background(), root, endpointManifest(t, "foo"), render, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrIOFailure))
		assert.Empty(t, testutil.ListFiles(t, root))
	})

	t.Run("region removed", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, endpoint.RoutesFile, "export default function(app) {}\n")
		_, err := Apply(context.Background(), root, endpointManifest(t, "foo"), render, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrMergeAnchorMissing))
		assert.Equal(t, []string{endpoint.RoutesFile}, testutil.ListFiles(t, root))
	})
}

func TestApply_PlanIOFailure(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "server", "a file where a directory should be")

	_, err := Apply(context.Background(), root, appManifest(t), render, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrIOFailure))
}

func TestApply_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Apply(ctx, t.TempDir(), appManifest(t), render, Options{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 4, res.Count(StatusSkipped))
}

func TestApply_RenderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Apply(context.Background(), t.TempDir(), appManifest(t), func(manifest.Entry) ([]byte, error) {
		return nil, boom
	}, Options{})
	assert.ErrorIs(t, err, boom)
}

func TestVerifyTree(t *testing.T) {
	root := t.TempDir()
	m := appManifest(t)
	_, err := Apply(context.Background(), root, m, render, Options{})
	require.NoError(t, err)

	testutil.WriteFile(t, root, "stray.txt", "x")
	testutil.WriteFile(t, root, "node_modules/lib/index.js", "x")
	testutil.WriteFile(t, root, "package-lock.json", "{}")
	require.NoError(t, os.Remove(filepath.Join(root, "server/index.js")))

	diff, err := VerifyTree(root, []string{"node_modules/", "package-lock.json"}, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"server/index.js"}, diff.Missing)
	assert.Equal(t, []string{"stray.txt"}, diff.Extra)
	assert.False(t, diff.Empty())

	_, err = VerifyTree(filepath.Join(root, "missing"), nil, m)
	assert.True(t, errors.Is(err, oerrors.ErrIOFailure))
}
