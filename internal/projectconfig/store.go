// Package projectconfig persists the resolved option set of a generated
// project in its root directory.
package projectconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
	"github.com/fullstack-gen/fsgen/internal/fsutil"
	"github.com/fullstack-gen/fsgen/internal/options"
)

const (
	// FileName is the config file written at the project root.
	FileName = ".fsgenrc.json"

	// GeneratorName keys the option set inside the config file.
	GeneratorName = "fsgen"
)

// Record is the persisted project configuration.
type Record struct {
	GeneratorName string
	Options       options.OptionSet
}

// Path returns the config file location for a project root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Exists reports whether root holds a config file.
func Exists(root string) bool {
	_, err := os.Stat(Path(root))
	return err == nil
}

// Save writes rec to root as {"<generator>": {...options...}}. The option
// set must be coherent; it is stored in canonical form so that Load gives
// back an equal set. The file is replaced atomically.
func Save(root string, rec Record) error {
	set, err := options.Canonical(rec.Options)
	if err != nil {
		return err
	}
	name := rec.GeneratorName
	if name == "" {
		name = GeneratorName
	}

	data, err := json.MarshalIndent(map[string]options.OptionSet{name: set}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	p := Path(root)
	if err := fsutil.WriteFileAtomic(p, data, 0o644); err != nil {
		return oerrors.NewIOError("writing project config", p, err)
	}
	return nil
}

// Load reads the config of the project at root.
func Load(root string) (Record, error) {
	return LoadAs(root, GeneratorName)
}

// LoadAs reads the option set stored under generator. Unknown fields are
// ignored; fields absent from the stored object take their default. A
// missing file is ErrConfigNotFound; unparseable JSON, a missing generator
// key, or incoherent values are ErrConfigCorrupt.
func LoadAs(root, generator string) (Record, error) {
	p := Path(root)
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, oerrors.NewConfigNotFoundError(p)
	}
	if err != nil {
		return Record{}, oerrors.NewIOError("reading project config", p, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, oerrors.NewConfigCorruptError(p, "config is not a JSON object", err)
	}
	raw, ok := doc[generator]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Record{}, oerrors.NewConfigCorruptError(p, "missing \""+generator+"\" options", nil)
	}

	var bag options.Bag
	if err := json.Unmarshal(raw, &bag); err != nil {
		return Record{}, oerrors.NewConfigCorruptError(p, "stored options have the wrong shape", err)
	}
	set, err := options.Resolve(bag, options.Defaults())
	if err != nil {
		return Record{}, oerrors.NewConfigCorruptError(p, "stored options are invalid", err)
	}

	return Record{GeneratorName: generator, Options: set}, nil
}
