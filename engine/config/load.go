package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a supported config file encoding.
type Format int

const (
	// FormatTOML is the default encoding.
	FormatTOML Format = iota
	// FormatYAML is selected by a .yaml or .yml extension.
	FormatYAML
)

// FormatFromPath picks the encoding from the file extension. Unknown extensions are treated as TOML.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the encoding
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Load reads path and overlays it on Default(). Keys missing from the file keep their default value.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the merged, validated configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data, FormatFromPath(path), Default())
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays data on base and validates the result.
//
// Parameters:
//   - data: the encoded document
//   - format: the encoding of data
//   - base: the values used for keys absent from data
//
// Returns:
//   - Config: the merged configuration
//   - error: decode or validation error
func Decode(data []byte, format Format, base Config) (Config, error) {
	cfg := base
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode serializes c in the given format.
//
// Parameters:
//   - c: the configuration
//   - format: the target encoding
//
// Returns:
//   - []byte: the encoded document
//   - error: encode error
func Encode(c Config, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(c)
	}
	return toml.Marshal(c)
}

// Save writes c to path in the format implied by its extension.
//
// Parameters:
//   - path: the destination file
//   - c: the configuration
//
// Returns:
//   - error: encode or write error
func Save(path string, c Config) error {
	data, err := Encode(c, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
