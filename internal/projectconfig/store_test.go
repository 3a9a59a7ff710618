package projectconfig

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/options"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(Path(root), []byte(content), 0o644))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sets := map[string]options.OptionSet{"defaults": options.Defaults()}

	custom := options.Defaults()
	custom.Transpiler = options.TypeScript
	custom.Flow = false
	custom.Testing = options.Jasmine
	custom.ODMs = []options.ODM{options.Mongoose, options.Sequelize}
	custom.OAuth = []options.OAuthProvider{options.GoogleAuth}
	custom.DevPort = "9000"
	sets["custom"] = custom

	bare := options.Defaults()
	bare.ODMs = []options.ODM{}
	bare.Auth = false
	bare.WS = false
	sets["bare"] = bare

	nilLists := options.Defaults()
	nilLists.ODMs = nil
	nilLists.Auth = false
	nilLists.OAuth = nil
	sets["nil lists"] = nilLists

	unsorted := options.Defaults()
	unsorted.ODMs = []options.ODM{options.Sequelize, options.Mongoose}
	unsorted.OAuth = []options.OAuthProvider{options.TwitterAuth, options.FacebookAuth}
	sets["unsorted"] = unsorted

	for name, set := range sets {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, Save(root, Record{Options: set}))
			assert.True(t, Exists(root))

			rec, err := Load(root)
			require.NoError(t, err)
			assert.Equal(t, GeneratorName, rec.GeneratorName)
			assert.True(t, rec.Options.Equal(set))

			again := t.TempDir()
			require.NoError(t, Save(again, rec))
			reloaded, err := Load(again)
			require.NoError(t, err)
			assert.Equal(t, rec.Options, reloaded.Options)
		})
	}
}

func TestSave_StoresCanonicalSets(t *testing.T) {
	root := t.TempDir()
	set := options.Defaults()
	set.ODMs = []options.ODM{options.Sequelize, options.Mongoose}
	require.NoError(t, Save(root, Record{Options: set}))

	var doc map[string]map[string]any
	data, err := os.ReadFile(Path(root))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []any{"mongoose", "sequelize"}, doc[GeneratorName]["odms"])

	bare := options.Defaults()
	bare.ODMs = nil
	bare.Auth = false
	require.NoError(t, Save(root, Record{Options: bare}))
	data, err = os.ReadFile(Path(root))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []any{}, doc[GeneratorName]["odms"])

	rec, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, rec.Options.ODMs)
}

func TestSave_Format(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Save(root, Record{Options: options.Defaults()}))

	data, err := os.ReadFile(Path(root))
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "fsgen")
	assert.Equal(t, "babel", doc["fsgen"]["transpiler"])
	assert.Equal(t, []any{"mongoose"}, doc["fsgen"]["odms"])
	assert.NotContains(t, doc["fsgen"], "devPort")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_RejectsIncoherentSet(t *testing.T) {
	set := options.Defaults()
	set.Flow = true
	set.Transpiler = options.TypeScript

	root := t.TempDir()
	err := Save(root, Record{Options: set})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrInvalidOptionCombination))
	assert.False(t, Exists(root))
}

func TestSave_IOFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	err := Save(root, Record{Options: options.Defaults()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrIOFailure))
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfigNotFound))
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{fsgen:"},
		{"not an object", `["fsgen"]`},
		{"missing generator key", `{"other": {}}`},
		{"null options", `{"fsgen": null}`},
		{"wrong field type", `{"fsgen": {"odms": "mongoose"}}`},
		{"unknown enum value", `{"fsgen": {"markup": "haml"}}`},
		{"incoherent combination", `{"fsgen": {"transpiler": "ts", "flow": true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			_, err := Load(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrConfigCorrupt))
			assert.False(t, errors.Is(err, oerrors.ErrConfigNotFound))
		})
	}
}

func TestLoad_IgnoresUnknownFieldsAndFillsDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{
  "fsgen": {"stylesheet": "less", "futureOption": {"x": 1}},
  "other-generator": {"anything": true}
}`)

	rec, err := Load(root)
	require.NoError(t, err)

	want := options.Defaults()
	want.Stylesheet = options.Less
	assert.True(t, rec.Options.Equal(want))
}

func TestLoadAs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Save(root, Record{GeneratorName: "custom-gen", Options: options.Defaults()}))

	rec, err := LoadAs(root, "custom-gen")
	require.NoError(t, err)
	assert.Equal(t, "custom-gen", rec.GeneratorName)

	_, err = Load(root)
	assert.True(t, errors.Is(err, oerrors.ErrConfigCorrupt))
}
