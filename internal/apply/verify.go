package apply

import (
	"io/fs"
	"path/filepath"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/manifest"
	"github.com/fullstack-gen/fsgen/internal/projectconfig"
)

// TreeDiff compares the files below a project root with a manifest.
type TreeDiff struct {
	// Missing holds manifest paths with no file on disk.
	Missing []string

	// Extra holds files on disk that no manifest entry accounts for.
	Extra []string
}

// Empty reports whether the tree matches the manifest exactly.
func (d TreeDiff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0
}

// VerifyTree lists every regular file below root and compares the listing
// with the paths of the given manifests. The project config file is always
// ignored; ignore adds paths, or directory prefixes ending in "/", that are
// skipped as well (for example "node_modules/").
func VerifyTree(root string, ignore []string, manifests ...*manifest.Manifest) (TreeDiff, error) {
	want := sets.New[string]()
	for _, m := range manifests {
		want.Insert(m.Paths()...)
	}

	skip := append([]string{projectconfig.FileName}, ignore...)
	got := sets.New[string]()
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ignored(rel, d.IsDir(), skip) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			got.Insert(rel)
		}
		return nil
	})
	if err != nil {
		return TreeDiff{}, oerrors.NewIOError("listing project tree", root, err)
	}

	return TreeDiff{
		Missing: sets.List(want.Difference(got)),
		Extra:   sets.List(got.Difference(want)),
	}, nil
}

func ignored(rel string, dir bool, skip []string) bool {
	for _, s := range skip {
		if prefix, ok := strings.CutSuffix(s, "/"); ok {
			if rel == prefix || strings.HasPrefix(rel, s) {
				return true
			}
			continue
		}
		if !dir && rel == s {
			return true
		}
	}
	return false
}
