// Package globalconfig loads the optional, machine-wide default config file
// (`$XDG_CONFIG_HOME/laurn/config.jsonc`), used to seed policy defaults for
// projects that have no `.laurnrc` of their own (notably `laurn run`, which
// never reads a project policy file). The format is JSONC rather than the
// project-level file's TOML, since this file is meant to be hand-edited
// with the occasional explanatory comment.
package globalconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/baloo/laurn/internal/policyfile"
	"github.com/baloo/laurn/internal/strategy"
)

// Defaults holds the subset of policy knobs a global config may override.
// Both fields are optional; an absent field leaves the built-in default
// (mode=none, network=isolated) untouched.
type Defaults struct {
	Mode    *strategy.Mode          `json:"mode,omitempty"`
	Network *policyfile.NetworkMode `json:"network,omitempty"`
}

// Path returns the default global config path, honoring XDG_CONFIG_HOME.
func Path(env map[string]string) (string, error) {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "laurn", "config.jsonc"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("globalconfig: resolving home directory: %w", err)
	}

	return filepath.Join(home, ".config", "laurn", "config.jsonc"), nil
}

// Load reads and parses the global config at path. A missing file is not an
// error: it returns a zero Defaults, meaning "apply no overrides".
func Load(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults{}, nil
		}

		return Defaults{}, fmt.Errorf("globalconfig: reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Defaults{}, fmt.Errorf("globalconfig: parsing %s: %w", path, err)
	}

	var d Defaults

	decoder := json.NewDecoder(bytes.NewReader(standardized))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&d); err != nil {
		return Defaults{}, fmt.Errorf("globalconfig: parsing %s: %w", path, err)
	}

	if d.Mode != nil {
		switch *d.Mode {
		case strategy.ModeNone, strategy.ModeRust:
		default:
			return Defaults{}, fmt.Errorf("globalconfig: unknown mode %q", *d.Mode)
		}
	}

	if d.Network != nil {
		switch *d.Network {
		case policyfile.Isolated, policyfile.Exposed:
		default:
			return Defaults{}, fmt.Errorf("globalconfig: unknown network mode %q", *d.Network)
		}
	}

	return d, nil
}

// Apply overlays non-nil Defaults fields onto cfg, returning the result.
// cfg itself is left unmodified.
func Apply(cfg policyfile.Config, d Defaults) policyfile.Config {
	out := cfg

	if d.Mode != nil {
		out.Laurn.Mode = *d.Mode
	}

	if d.Network != nil {
		out.Laurn.Network = *d.Network
	}

	return out
}
