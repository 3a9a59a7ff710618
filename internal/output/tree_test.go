package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFileTree(t *testing.T) {
	out := RenderFileTree("demo", map[string]string{
		"package.json":               "base",
		"server/index.js":            "base",
		"server/auth/local/index.js": "auth",
		".flowconfig":                "flow",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "demo/")
	assert.Contains(t, lines[1], "server/", "directories sort first")
	assert.Contains(t, out, "└── package.json")
	assert.Contains(t, out, "│   ├── auth/")
	assert.Contains(t, out, "local/")
	assert.Empty(t, RenderFileTree("demo", nil))
}
