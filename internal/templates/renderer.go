package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/fullstack-gen/fsgen/internal/naming"
	"github.com/fullstack-gen/fsgen/internal/options"
)

// Data is passed to every template.
type Data struct {
	// Project is the application name.
	Project string

	// Path is the output path being rendered.
	Path string

	// Options is the resolved option set of the project.
	Options options.OptionSet

	// Name is the endpoint name; zero for application files.
	Name naming.Name

	// Route is the endpoint's registered URL ("/api/foo/bazs").
	Route string

	// Module is the endpoint's module path ("api/foo/baz").
	Module string

	// Model is the backend an endpoint model is written for.
	Model options.ODM
}

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"join":    strings.Join,
	"lower":   strings.ToLower,
	"comment": comment,
	"has": func(list []options.ODM, v string) bool {
		for _, x := range list {
			if string(x) == v {
				return true
			}
		}
		return false
	},
}

// Renderer executes embedded templates by ID. Templates are parsed once by
// NewRenderer; a Renderer is safe for concurrent use.
type Renderer struct {
	byID map[string]*template.Template
	stub *template.Template
}

// NewRenderer parses every embedded template with strict mode
// (missingkey=error).
func NewRenderer() (*Renderer, error) {
	r := &Renderer{byID: make(map[string]*template.Template)}

	err := fs.WalkDir(filesFS, rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, tmplSuffix) {
			return nil
		}
		content, err := fs.ReadFile(filesFS, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		id := strings.TrimSuffix(strings.TrimPrefix(p, rootDir+"/"), tmplSuffix)
		tmpl, err := template.New(id).Funcs(funcs).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", id, err)
		}
		if id == stubID {
			r.stub = tmpl
		} else {
			r.byID[id] = tmpl
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if r.stub == nil {
		return nil, fmt.Errorf("stub template %s%s is missing", stubID, tmplSuffix)
	}
	return r, nil
}

// Has reports whether id has a template of its own.
func (r *Renderer) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Render executes the template for id, falling back to the stub template.
func (r *Renderer) Render(id string, data Data) ([]byte, error) {
	tmpl, ok := r.byID[id]
	if !ok {
		tmpl = r.stub
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", id, err)
	}
	return buf.Bytes(), nil
}

// comment renders text as a one-line comment in the syntax of the file at
// p. Binary and JSON files get no comment.
func comment(p, text string) string {
	base := path.Base(p)
	switch path.Ext(base) {
	case ".js", ".ts", ".styl", ".less", ".scss":
		return "// " + text + "\n"
	case ".css":
		return "/* " + text + " */\n"
	case ".html", ".md":
		return "<!-- " + text + " -->\n"
	case ".pug":
		return "//- " + text + "\n"
	case ".json":
		return "{}\n"
	case ".png", ".ico":
		return ""
	}
	switch base {
	case ".babelrc", ".eslintrc":
		return "{}\n"
	}
	return "# " + text + "\n"
}
