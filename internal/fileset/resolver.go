// Package fileset resolves an option set into the manifest of files an
// application generation produces.
package fileset

import (
	"fmt"
	"strings"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/options"
	"github.com/fullstack-gen/fsgen/internal/templates"
)

// TemplatePrefix prefixes the template ID of every application file.
const TemplatePrefix = "app/"

// Resolver maps option sets to manifests. It holds only the validated static
// contribution tables and is safe for concurrent use.
type Resolver struct {
	contributions []contribution
}

// NewResolver validates the contribution tables: every contribution must be
// tagged and no two may declare the same path pattern.
func NewResolver() (*Resolver, error) {
	return newResolver(contributions)
}

func newResolver(cs []contribution) (*Resolver, error) {
	owners := make(map[string]string)
	for i, c := range cs {
		if c.tag == "" || c.enabled == nil {
			return nil, fmt.Errorf("contribution #%d is missing its tag or condition", i)
		}
		for _, fl := range c.files {
			if prev, ok := owners[fl.pattern]; ok {
				return nil, oerrors.NewDuplicatePathError(fl.pattern, prev, c.tag)
			}
			owners[fl.pattern] = c.tag
		}
	}
	return &Resolver{contributions: cs}, nil
}

// Resolve concatenates the enabled contributions in priority order. The
// result depends only on set: equal sets give equal manifests in equal
// order, whatever the order of their set-valued fields. A path produced
// twice fails with ErrDuplicateOutputPath.
func (r *Resolver) Resolve(set options.OptionSet) (*manifest.Manifest, error) {
	set = set.Sorted()
	m := manifest.New()
	for _, c := range r.contributions {
		if !c.enabled(set) {
			continue
		}
		if !c.perProvider {
			if err := addFiles(m, set, c, "", []string{c.tag}); err != nil {
				return nil, err
			}
			continue
		}
		for _, p := range set.OAuth {
			tags := []string{c.tag, c.tag + ":" + p.Short()}
			if err := addFiles(m, set, c, p.Short(), tags); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Tags returns the contribution tags in priority order, without repeats.
func (r *Resolver) Tags() []string {
	var tags []string
	seen := make(map[string]bool)
	for _, c := range r.contributions {
		if !seen[c.tag] {
			seen[c.tag] = true
			tags = append(tags, c.tag)
		}
	}
	return tags
}

func addFiles(m *manifest.Manifest, set options.OptionSet, c contribution, provider string, tags []string) error {
	paths := strings.NewReplacer(
		phScript, set.ScriptExt(),
		phMarkup, set.MarkupExt(),
		phStyle, set.StyleExt(),
		phProvider, provider,
	)
	ids := strings.NewReplacer(
		phScript, "script",
		phMarkup, "markup",
		phStyle, "style",
		phProvider, provider,
	)

	for _, fl := range c.files {
		id := TemplatePrefix + ids.Replace(fl.pattern)
		switch fl.variant {
		case variantTesting:
			id = templates.WithVariant(id, string(set.Testing))
		case variantModel:
			id = templates.WithVariant(id, string(primaryBackend(set)))
		}
		err := m.Add(manifest.Entry{
			Path:       paths.Replace(fl.pattern),
			TemplateID: id,
			Tags:       tags,
			Kind:       manifest.KindCreate,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// primaryBackend is the first configured backend in canonical order.
func primaryBackend(set options.OptionSet) options.ODM {
	if len(set.ODMs) == 0 {
		return ""
	}
	return set.ODMs[0]
}
