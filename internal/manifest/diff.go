package manifest

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Difference is the path-level comparison of two manifests.
type Difference struct {
	// Added holds paths only in the second manifest.
	Added []string

	// Removed holds paths only in the first manifest.
	Removed []string

	// Changed holds paths in both whose template, kind, or tags differ.
	Changed []string
}

// Empty reports whether the manifests produce the same paths the same way.
func (d Difference) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares two manifests. All lists are sorted.
func Diff(from, to *Manifest) Difference {
	a := sets.New(from.Paths()...)
	b := sets.New(to.Paths()...)

	var changed []string
	for _, p := range sets.List(a.Intersection(b)) {
		ea, _ := from.Get(p)
		eb, _ := to.Get(p)
		if ea.TemplateID != eb.TemplateID || ea.Kind != eb.Kind || !slices.Equal(ea.Tags, eb.Tags) {
			changed = append(changed, p)
		}
	}

	return Difference{
		Added:   sets.List(b.Difference(a)),
		Removed: sets.List(a.Difference(b)),
		Changed: changed,
	}
}
