package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/fullstack-gen/fsgen/internal/manifest"
)

// WriteManifest writes the entries of m to w in the given format. The tree
// format renders paths below rootName.
func WriteManifest(w io.Writer, m *manifest.Manifest, format OutputFormat, rootName string) error {
	entries := m.Entries()
	if entries == nil {
		entries = []manifest.Entry{}
	}

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(entries); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil

	case FormatTable:
		tbl := NewTable("PATH", "KIND", "TEMPLATE", "TAGS")
		for _, e := range entries {
			tbl.Row(e.Path, string(e.Kind), entryTemplate(e), strings.Join(e.Tags, ","))
		}
		_, err := fmt.Fprintln(w, tbl.String())
		return err

	case FormatTree:
		files := make(map[string]string, len(entries))
		for _, e := range entries {
			files[e.Path] = strings.Join(e.Tags, ",")
		}
		_, err := io.WriteString(w, RenderFileTree(rootName, files))
		return err

	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	return fmt.Errorf("format %q not supported for manifest output (valid: %s)",
		format, strings.Join(ValidFormats(), ", "))
}

func entryTemplate(e manifest.Entry) string {
	if e.Kind == manifest.KindMerge && e.Merge != nil {
		return e.Merge.Registry + ":" + e.Merge.Key
	}
	return e.TemplateID
}

// DiffManifests renders a YAML-aware diff of two manifests' entries.
func DiffManifests(fromName string, from *manifest.Manifest, toName string, to *manifest.Manifest, useColor bool) (string, error) {
	fromYAML, err := yaml.Marshal(from.Entries())
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", fromName, err)
	}
	toYAML, err := yaml.Marshal(to.Entries())
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", toName, err)
	}
	return DiffYAML(fromName, fromYAML, toName, toYAML, useColor)
}
