package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDiff(t *testing.T) {
	t.Run("renders no changes message", func(t *testing.T) {
		assert.Equal(t, "No changes detected.", RenderDiff(nil, nil, nil))
	})

	t.Run("renders added paths", func(t *testing.T) {
		result := RenderDiff([]string{"tsconfig.json"}, nil, nil)

		assert.Contains(t, result, "Added:")
		assert.Contains(t, result, "tsconfig.json")
		assert.Contains(t, result, "1 added")
	})

	t.Run("renders removed paths", func(t *testing.T) {
		result := RenderDiff(nil, []string{".flowconfig"}, nil)

		assert.Contains(t, result, "Removed:")
		assert.Contains(t, result, ".flowconfig")
		assert.Contains(t, result, "1 removed")
	})

	t.Run("renders modified paths with detail", func(t *testing.T) {
		modified := []ModifiedItem{
			{Name: "client/app/app.js", Diff: "template:\n  - app/client/app/app.js\n  + app/client/app/app.ts"},
		}
		result := RenderDiff(nil, nil, modified)

		assert.Contains(t, result, "Modified:")
		assert.Contains(t, result, "client/app/app.js")
		assert.Contains(t, result, "    template:")
		assert.Contains(t, result, "1 modified")
	})

	t.Run("renders all change types", func(t *testing.T) {
		result := RenderDiff([]string{"a"}, []string{"b"}, []ModifiedItem{{Name: "c"}})

		assert.Contains(t, result, "Added:")
		assert.Contains(t, result, "Removed:")
		assert.Contains(t, result, "Modified:")
		assert.Contains(t, result, "1 added, 1 removed, 1 modified")
	})
}

func TestDiffSummary(t *testing.T) {
	tests := []struct {
		name     string
		added    int
		removed  int
		modified int
		want     string
	}{
		{"no changes", 0, 0, 0, "No changes"},
		{"only added", 1, 0, 0, "1 added"},
		{"only removed", 0, 2, 0, "2 removed"},
		{"only modified", 0, 0, 3, "3 modified"},
		{"added and removed", 12, 2, 0, "12 added, 2 removed"},
		{"all types", 1, 2, 3, "1 added, 2 removed, 3 modified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diffSummary(tt.added, tt.removed, tt.modified))
		})
	}
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "    line1\n    line2\n", IndentDiff("line1\n\nline2", "    "))
	assert.Empty(t, IndentDiff("", "    "))
}
