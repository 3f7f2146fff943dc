// Package config loads pylens.toml and supplies rule settings with sane
// defaults when no file is present.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest pylens looks for, walking up from the linted
// directory.
const FileName = "pylens.toml"

// Config is the full tool configuration.
type Config struct {
	Rules RulesConfig `toml:"rules"`
	Paths PathsConfig `toml:"paths"`
}

// RulesConfig tunes individual rules.
type RulesConfig struct {
	MaxLineLength         int  `toml:"max_line_length"`
	IndentationUnit       int  `toml:"indentation_unit"`
	IgnoreUnusedVariables bool `toml:"ignore_unused_variables"`
	MaxDiagnostics        int  `toml:"max_diagnostics"`

	// Naming maps a symbol kind ("function", "class", "variable",
	// "parameter", "method", "constant") to a regular expression that
	// replaces the built-in convention for that kind.
	Naming map[string]string `toml:"naming"`
}

// PathsConfig controls file discovery.
type PathsConfig struct {
	Exclude []string `toml:"exclude"`
}

// Default returns the configuration used when no pylens.toml exists.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			MaxLineLength:   88,
			IndentationUnit: 4,
			MaxDiagnostics:  200,
		},
	}
}

// Load reads the file at path over the defaults. Unknown keys are
// rejected so typos do not silently disable rules.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks from startDir upward looking for pylens.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve finds and loads the nearest pylens.toml, falling back to the
// defaults when there is none.
func Resolve(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) validate() error {
	if c.Rules.MaxLineLength <= 0 {
		return errors.New("[rules].max_line_length must be positive")
	}
	if c.Rules.IndentationUnit <= 0 {
		return errors.New("[rules].indentation_unit must be positive")
	}
	if c.Rules.MaxDiagnostics < 0 {
		return errors.New("[rules].max_diagnostics must not be negative")
	}
	return nil
}

// Digest returns a stable hash of everything that can change lint
// results. The disk cache keys entries by it.
func (c Config) Digest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "v1|max_line=%d|indent=%d|ignore_unused=%t|max_diag=%d",
		c.Rules.MaxLineLength, c.Rules.IndentationUnit,
		c.Rules.IgnoreUnusedVariables, c.Rules.MaxDiagnostics)
	keys := make([]string, 0, len(c.Rules.Naming))
	for k := range c.Rules.Naming {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "|naming.%s=%s", k, c.Rules.Naming[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
