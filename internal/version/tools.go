package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// toolVersionRegex matches version output like "v20.11.1" or "10.2.4".
var toolVersionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// detectTimeout bounds a single "<tool> --version" call.
const detectTimeout = 5 * time.Second

// ToolInfo describes an external tool generated projects depend on.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Path    string `json:"path,omitempty"`
	Found   bool   `json:"found"`

	// Message explains a detection failure.
	Message string `json:"message,omitempty"`
}

// DetectTool looks name up in PATH and asks it for its version.
func DetectTool(ctx context.Context, name string) ToolInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		return ToolInfo{Name: name, Message: name + " not found in PATH"}
	}

	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return ToolInfo{Name: name, Path: path, Found: true, Message: "failed to get version: " + err.Error()}
	}

	v, err := extractVersion(out.String())
	if err != nil {
		return ToolInfo{Name: name, Path: path, Found: true, Message: err.Error()}
	}
	return ToolInfo{Name: name, Version: v, Path: path, Found: true}
}

// extractVersion finds the first version number in output and gives it a
// "v" prefix.
func extractVersion(output string) (string, error) {
	match := toolVersionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("no version in output %q", strings.TrimSpace(output))
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}

// String returns one aligned line per tool.
func (t ToolInfo) String() string {
	switch {
	case !t.Found:
		return fmt.Sprintf("  %-6s not found", t.Name+":")
	case t.Version == "":
		return fmt.Sprintf("  %-6s %s (%s)", t.Name+":", t.Path, t.Message)
	default:
		return fmt.Sprintf("  %-6s %s (%s)", t.Name+":", t.Version, t.Path)
	}
}
