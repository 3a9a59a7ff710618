// Package templates provides the embedded file templates and rendering.
//
// Templates live under files/ and are addressed by template ID: the path
// below files/ without the .tmpl suffix ("app/server/routes.js",
// "endpoint/index.spec.mocha.js"). An ID with no template of its own
// renders the stub template.
package templates

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed all:files
var filesFS embed.FS

const (
	rootDir    = "files"
	tmplSuffix = ".tmpl"
	stubID     = "_stub"
)

// WithVariant inserts variant before the final extension of id:
// WithVariant("endpoint/index.spec.js", "jasmine") is
// "endpoint/index.spec.jasmine.js".
func WithVariant(id, variant string) string {
	if variant == "" {
		return id
	}
	ext := path.Ext(id)
	return strings.TrimSuffix(id, ext) + "." + variant + ext
}

// List returns the IDs of every embedded template, sorted.
func List() ([]string, error) {
	var ids []string
	err := fs.WalkDir(filesFS, rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, tmplSuffix) {
			return nil
		}
		id := strings.TrimSuffix(strings.TrimPrefix(p, rootDir+"/"), tmplSuffix)
		if id != stubID {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
