package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
)

// Digest computes a SHA256 digest over the entries in manifest order. Equal
// manifests (same entries, same order) have equal digests.
//
// Algorithm:
//  1. json.Marshal each entry
//  2. Concatenate serialized bytes with newline separators
//  3. SHA256 the result -> "sha256:<hex>"
func (m *Manifest) Digest() string {
	return digest(m.entries)
}

// ContentDigest computes a digest independent of entry order, by sorting
// entries on path first.
func (m *Manifest) ContentDigest() string {
	sorted := m.Entries()
	SortEntries(sorted)
	return digest(sorted)
}

// SortEntries sorts entries by kind (creations first) then path.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		if ei.Kind != ej.Kind {
			return ei.Kind == KindCreate
		}
		return ei.Path < ej.Path
	})
}

func digest(entries []Entry) string {
	h := sha256.New()
	for i, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			// Entry holds only strings and slices of strings.
			b = []byte(fmt.Sprintf("%v", e))
		}
		h.Write(b)
		if i < len(entries)-1 {
			h.Write([]byte("\n"))
		}
	}
	return fmt.Sprintf("sha256:%x", h.Sum(nil))
}
