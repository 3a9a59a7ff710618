package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fullstack-gen/fsgen/internal/fsutil"
)

const configHeader = `# fsgen user configuration.
# Values here are overridden by FSGEN_* environment variables and flags.
#
# defaults: baseline option overrides for 'fsgen new', for example
#   defaults:
#     stylesheet: less
#     odms: [mongoose, sequelize]
`

// Encode renders cfg as commented YAML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg to path with owner-only permissions.
func WriteFile(path string, cfg *Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o600)
}
