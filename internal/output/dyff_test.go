package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffYAML(t *testing.T) {
	t.Run("equal documents", func(t *testing.T) {
		doc := []byte("transpiler: babel\nws: true\n")
		out, err := DiffYAML("saved", doc, "proposed", doc, false)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("changed field", func(t *testing.T) {
		out, err := DiffYAML("saved", []byte("transpiler: babel\nws: true\n"),
			"proposed", []byte("transpiler: ts\nws: true\n"), false)
		require.NoError(t, err)
		assert.Contains(t, out, "transpiler")
		assert.Contains(t, out, "babel")
		assert.Contains(t, out, "ts")
	})

	t.Run("both empty", func(t *testing.T) {
		out, err := DiffYAML("a", nil, "b", nil, false)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := DiffYAML("a", []byte("a: [1"), "b", []byte("a: 1"), false)
		assert.Error(t, err)
	})
}
