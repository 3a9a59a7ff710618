// Package naming turns free-form resource identifiers into the canonical forms
// used for file names, type names, and route segments.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/apimachinery/pkg/util/validation"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

// Name is the normalized form of an endpoint identifier.
type Name struct {
	// Raw is the identifier as given.
	Raw string

	// FileBase is the lowercase-hyphenated resource name ("foo-boo").
	FileBase string

	// TypeName is the compact capitalized resource name ("FooBoo").
	TypeName string

	// RouteSegment is the lowercase-hyphenated route segment.
	RouteSegment string

	// ParentPath holds the normalized segments preceding the resource.
	ParentPath []string
}

// Normalize splits raw on path separators and derives every form of the
// last segment. It is a pure function of raw.
func Normalize(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Name{}, oerrors.NewInvalidNameError(raw, "name is empty")
	}

	segments := strings.Split(strings.ReplaceAll(trimmed, `\`, "/"), "/")

	normalized := make([]string, 0, len(segments))
	var words []string
	for _, seg := range segments {
		w, err := segmentWords(raw, seg)
		if err != nil {
			return Name{}, err
		}
		kebab := strings.Join(w, "-")
		if msgs := validation.IsDNS1123Label(kebab); len(msgs) > 0 {
			return Name{}, oerrors.NewInvalidNameError(raw, strings.Join(msgs, "; "))
		}
		normalized = append(normalized, kebab)
		words = w
	}

	last := normalized[len(normalized)-1]
	return Name{
		Raw:          raw,
		FileBase:     last,
		TypeName:     typeName(words),
		RouteSegment: last,
		ParentPath:   normalized[:len(normalized)-1],
	}, nil
}

// segmentWords splits one path segment into lowercase words.
func segmentWords(raw, seg string) ([]string, error) {
	seg = strings.TrimSpace(seg)
	switch seg {
	case "":
		return nil, oerrors.NewInvalidNameError(raw, "empty path segment")
	case ".", "..":
		return nil, oerrors.NewInvalidNameError(raw, "relative path segments are not allowed")
	}

	for _, r := range seg {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ' ') {
			return nil, oerrors.NewInvalidNameError(raw, fmt.Sprintf("reserved character %q in %q", r, seg))
		}
	}

	words := splitWords(seg)
	if len(words) == 0 {
		return nil, oerrors.NewInvalidNameError(raw, fmt.Sprintf("segment %q has no letters or digits", seg))
	}
	if unicode.IsDigit(rune(words[0][0])) {
		return nil, oerrors.NewInvalidNameError(raw, fmt.Sprintf("segment %q must start with a letter", seg))
	}
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words, nil
}

// splitWords breaks an identifier on separators and lower-to-upper case
// transitions. Runs of capitals stay together ("FOO" is one word).
func splitWords(s string) []string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)

	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.Fields(b.String())
}

func typeName(words []string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// Path is the resource's module path relative to the API root ("foo/baz").
func (n Name) Path() string {
	return strings.Join(append(append([]string{}, n.ParentPath...), n.FileBase), "/")
}

// Route is the registered URL for the resource under base ("/api/foo/bazs").
func (n Name) Route(base string) string {
	parts := append([]string{strings.TrimSuffix(base, "/")}, n.ParentPath...)
	return strings.Join(append(parts, n.RouteSegment+"s"), "/")
}

// QualifiedTypeName prefixes the type name with the parent segments
// ("foo/baz" gives "FooBaz"). It names the resource uniquely across nesting.
func (n Name) QualifiedTypeName() string {
	var words []string
	for _, seg := range n.ParentPath {
		words = append(words, strings.Split(seg, "-")...)
	}
	return typeName(words) + n.TypeName
}

// VarName is the lower camel-case form of the type name ("fooBoo").
func (n Name) VarName() string {
	if n.TypeName == "" {
		return ""
	}
	return strings.ToLower(n.TypeName[:1]) + n.TypeName[1:]
}
