// Package config loads the optional edidflash configuration file and
// merges it with command-line flags into a single immutable run
// configuration.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transport kinds selectable in the file or on the command line.
const (
	TransportTools = "tools"
	TransportDevfs = "devfs"
)

// File mirrors the YAML configuration file. All fields are optional;
// command-line flags override anything set here.
type File struct {
	// Bus is the default I2C bus number. Negative means unset.
	Bus *int `yaml:"bus"`

	// Transport selects the byte transfer backend: "tools" or "devfs".
	Transport string `yaml:"transport"`

	// Danger makes real bus transactions the default (equivalent to -d).
	Danger bool `yaml:"danger"`

	// Capture is the default transaction capture file path.
	Capture string `yaml:"capture"`

	// LogLevel sets the operational log level: debug, info, warn, error.
	LogLevel string `yaml:"log-level"`

	// Tools overrides the i2c-tools binary locations.
	Tools ToolPaths `yaml:"tools-paths"`
}

// ToolPaths holds explicit locations for the delegated transaction tools.
// Empty values fall back to a PATH lookup.
type ToolPaths struct {
	I2CGet string `yaml:"i2cget"`
	I2CSet string `yaml:"i2cset"`
}

// Parse decodes a configuration file from YAML bytes. Unknown keys are
// rejected so typos surface instead of silently falling back to defaults.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: failed to parse YAML: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) validate() error {
	switch f.Transport {
	case "", TransportTools, TransportDevfs:
	default:
		return fmt.Errorf("config: unknown transport %q (supported: %s, %s)", f.Transport, TransportTools, TransportDevfs)
	}
	if f.Bus != nil && *f.Bus < 0 {
		return fmt.Errorf("config: bus must be non-negative, got %d", *f.Bus)
	}
	switch f.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", f.LogLevel)
	}
	return nil
}
