// Package policyfile parses the project-level `.laurnrc` policy file.
package policyfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/baloo/laurn/internal/strategy"
)

// NetworkMode controls whether the sandbox enters a new network namespace.
type NetworkMode string

const (
	// Isolated enters a new network namespace (CLONE_NEWNET); only "lo" is
	// visible inside the sandbox.
	Isolated NetworkMode = "isolated"
	// Exposed joins the host network namespace.
	Exposed NetworkMode = "exposed"
)

// Config is the decoded `.laurnrc` document. The built-in defaults
// (mode=none, network=isolated) come from Default(); the zero value has
// empty Mode and Network fields.
type Config struct {
	Laurn LaurnConfig `toml:"laurn"`
}

// LaurnConfig is the single `[laurn]` table.
type LaurnConfig struct {
	Mode    strategy.Mode `toml:"mode"`
	Network NetworkMode   `toml:"network"`
}

// Default returns the configuration used when no `.laurnrc` is present, or
// when a caller otherwise chooses to skip the policy file entirely.
func Default() Config {
	return Config{Laurn: LaurnConfig{Mode: strategy.ModeNone, Network: Isolated}}
}

// Load reads and parses the policy file at path.
//
// A missing file is not defaulted here — callers that treat a missing
// `.laurnrc` as "use Default()" should stat the path first.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("policyfile: reading %s: %w", path, err)
	}

	return parse(data)
}

func parse(data []byte) (Config, error) {
	cfg := Default()

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("policyfile: parsing: %w", err)
	}

	if err := validate(cfg, meta); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config, meta toml.MetaData) error {
	switch cfg.Laurn.Mode {
	case strategy.ModeNone, strategy.ModeRust:
	default:
		return fmt.Errorf("policyfile: unknown mode %q", cfg.Laurn.Mode)
	}

	switch cfg.Laurn.Network {
	case Isolated, Exposed:
	default:
		return fmt.Errorf("policyfile: unknown network mode %q", cfg.Laurn.Network)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("policyfile: unknown key %q", undecoded[0].String())
	}

	return nil
}
