package endpoint

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
)

// Registry names.
const (
	RegistryRoutes  = "routes"
	RegistrySockets = "sockets"
	RegistryModels  = "models"
)

// keyPatterns extract the idempotency key (the module path) from a
// registration line of each registry.
var keyPatterns = map[string]*regexp.Regexp{
	RegistryRoutes:  regexp.MustCompile(`^app\.use\('[^']*',\s*require\('\./([^']+)'\)\);$`),
	RegistrySockets: regexp.MustCompile(`^require\('\.\./([^']+)/[^'/]+\.socket'\)\.register\(socket\);$`),
	RegistryModels:  regexp.MustCompile(`^db\.\w+ = db\.sequelize\.import\('\.\./([^']+)/[^'/]+\.model'\);$`),
}

// BeginMarker and EndMarker delimit a registry region.
func BeginMarker(registry string) string { return "// fsgen:" + registry + ":begin" }

// EndMarker closes a registry region.
func EndMarker(registry string) string { return "// fsgen:" + registry + ":end" }

// Record is one line of a registry region. Lines that are not
// registrations have an empty Key and are kept verbatim.
type Record struct {
	Key  string
	Line string
}

// Region is the parsed generated region of an aggregate file.
type Region struct {
	Registry string
	Indent   string
	Records  []Record
}

// Keys returns the registered keys in order.
func (r *Region) Keys() []string {
	var keys []string
	for _, rec := range r.Records {
		if rec.Key != "" {
			keys = append(keys, rec.Key)
		}
	}
	return keys
}

// Has reports whether key is registered.
func (r *Region) Has(key string) bool {
	for _, rec := range r.Records {
		if rec.Key == key {
			return true
		}
	}
	return false
}

// Add appends a registration unless its key is already present. It
// reports whether the region changed.
func (r *Region) Add(key, line string) bool {
	if r.Has(key) {
		return false
	}
	r.Records = append(r.Records, Record{Key: key, Line: strings.TrimSpace(line)})
	return true
}

// Document is an aggregate file split around one registry region.
type Document struct {
	before []string
	Region Region
	after  []string
}

// ParseDocument locates the region of registry in content. A missing,
// repeated, or unbalanced region fails with ErrMergeAnchorMissing.
func ParseDocument(location string, content []byte, registry string) (*Document, error) {
	pattern, ok := keyPatterns[registry]
	if !ok {
		return nil, fmt.Errorf("unknown registry %q", registry)
	}
	begin, end := BeginMarker(registry), EndMarker(registry)

	lines := strings.Split(string(content), "\n")
	bi, ei := -1, -1
	for i, l := range lines {
		switch strings.TrimSpace(l) {
		case begin:
			if bi >= 0 {
				return nil, oerrors.NewMergeAnchorError(location, registry)
			}
			bi = i
		case end:
			if bi < 0 || ei >= 0 {
				return nil, oerrors.NewMergeAnchorError(location, registry)
			}
			ei = i
		}
	}
	if bi < 0 || ei < 0 {
		return nil, oerrors.NewMergeAnchorError(location, registry)
	}

	marker := lines[bi]
	doc := &Document{
		before: lines[:bi],
		after:  lines[ei+1:],
		Region: Region{
			Registry: registry,
			Indent:   marker[:len(marker)-len(strings.TrimLeft(marker, " \t"))],
		},
	}
	for _, l := range lines[bi+1 : ei] {
		trimmed := strings.TrimSpace(l)
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			doc.Region.Records = append(doc.Region.Records, Record{Key: m[1], Line: trimmed})
			continue
		}
		doc.Region.Records = append(doc.Region.Records, Record{Line: l})
	}
	return doc, nil
}

// Bytes regenerates the file with the region rewritten from its records.
func (d *Document) Bytes() []byte {
	r := d.Region
	lines := make([]string, 0, len(d.before)+len(r.Records)+len(d.after)+2)
	lines = append(lines, d.before...)
	lines = append(lines, r.Indent+BeginMarker(r.Registry))
	for _, rec := range r.Records {
		if rec.Key == "" {
			lines = append(lines, rec.Line)
		} else {
			lines = append(lines, r.Indent+rec.Line)
		}
	}
	lines = append(lines, r.Indent+EndMarker(r.Registry))
	lines = append(lines, d.after...)
	return []byte(strings.Join(lines, "\n"))
}

// ApplyMerge registers m in content. When the key is already registered
// the original content is returned unchanged and changed is false.
func ApplyMerge(location string, content []byte, m manifest.Merge) (out []byte, changed bool, err error) {
	doc, err := ParseDocument(location, content, m.Registry)
	if err != nil {
		return nil, false, err
	}
	if got := keyPatterns[m.Registry].FindStringSubmatch(strings.TrimSpace(m.Line)); got == nil || got[1] != m.Key {
		return nil, false, fmt.Errorf("registration %q does not carry key %q", m.Line, m.Key)
	}
	if !doc.Region.Add(m.Key, m.Line) {
		return content, false, nil
	}
	return doc.Bytes(), true, nil
}
