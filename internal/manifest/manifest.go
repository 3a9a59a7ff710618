// Package manifest describes what a generation run produces: an ordered,
// path-unique list of file creations and aggregate-file merges.
package manifest

import (
	"path"
	"slices"
	"strings"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

// Kind distinguishes whole-file creations from registry merges.
type Kind string

const (
	// KindCreate renders a template into a new file.
	KindCreate Kind = "create"

	// KindMerge registers a record in an existing aggregate file.
	KindMerge Kind = "merge"
)

// Merge is an idempotent registration into an aggregate file's generated
// region. Applying a merge whose Key is already registered is a no-op.
type Merge struct {
	// Registry names the generated region ("routes", "sockets", "models").
	Registry string `json:"registry"`

	// Key is the idempotency key of the record.
	Key string `json:"key"`

	// Line is the serialized registration record.
	Line string `json:"line"`
}

// Entry is one manifest item.
type Entry struct {
	// Path is the slash-separated output path relative to the project root.
	Path string `json:"path"`

	// TemplateID names the embedded template rendered for a creation.
	TemplateID string `json:"template,omitempty"`

	// Tags name the feature contributions that produced the entry.
	Tags []string `json:"tags,omitempty"`

	Kind  Kind   `json:"kind"`
	Merge *Merge `json:"merge,omitempty"`
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Manifest is an ordered list of entries with unique paths. Order is
// insertion order.
type Manifest struct {
	entries []Entry
	index   map[string]int
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{index: make(map[string]int)}
}

// Add appends an entry. It fails with ErrDuplicateOutputPath when the path is
// already present, naming the tags of both claimants.
func (m *Manifest) Add(e Entry) error {
	if err := validatePath(e.Path); err != nil {
		return err
	}
	if e.Kind == "" {
		e.Kind = KindCreate
	}
	if i, ok := m.index[e.Path]; ok {
		return oerrors.NewDuplicatePathError(e.Path,
			strings.Join(m.entries[i].Tags, "+"), strings.Join(e.Tags, "+"))
	}
	e.Tags = slices.Clone(e.Tags)
	if e.Merge != nil {
		mc := *e.Merge
		e.Merge = &mc
	}
	m.index[e.Path] = len(m.entries)
	m.entries = append(m.entries, e)
	return nil
}

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.entries) }

// Entries returns a copy of the entries in order.
func (m *Manifest) Entries() []Entry {
	return slices.Clone(m.entries)
}

// Get returns the entry at path.
func (m *Manifest) Get(p string) (Entry, bool) {
	i, ok := m.index[p]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Paths returns the output paths in order.
func (m *Manifest) Paths() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Path
	}
	return out
}

// Creations returns the create entries in order.
func (m *Manifest) Creations() []Entry {
	return m.filter(func(e Entry) bool { return e.Kind == KindCreate })
}

// Merges returns the merge entries in order.
func (m *Manifest) Merges() []Entry {
	return m.filter(func(e Entry) bool { return e.Kind == KindMerge })
}

// WithTag returns the entries carrying tag, in order.
func (m *Manifest) WithTag(tag string) []Entry {
	return m.filter(func(e Entry) bool { return e.HasTag(tag) })
}

func (m *Manifest) filter(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func validatePath(p string) error {
	switch {
	case p == "":
		return oerrors.NewValidationError("manifest entry has an empty path", "", "path", "")
	case strings.HasPrefix(p, "/"), strings.Contains(p, `\`):
		return oerrors.NewValidationError("manifest paths must be relative and slash-separated", p, "path", "")
	case path.Clean(p) != p, p == "..", strings.HasPrefix(p, "../"):
		return oerrors.NewValidationError("manifest paths must be clean and stay inside the project", p, "path", "")
	}
	return nil
}
