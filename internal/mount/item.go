// Package mount derives (source, target) pairs for exposed-path items and
// performs the bind-mount sequence that populates a sandbox root.
package mount

import (
	"fmt"

	"github.com/baloo/laurn/internal/pathutil"
	"github.com/baloo/laurn/internal/strategy"
)

// Kind tags how an Item's source and target paths are derived. It extends
// strategy.PathKind with Raw, the "closure entry / device / /sys" case that
// the policy resolver never produces but the launcher's fixed mount sequence
// does.
type Kind int

const (
	// Project mirrors strategy.Project: source and target are both
	// relative to the project directory.
	Project Kind = iota
	// UserHome mirrors strategy.UserHome: source and target are both
	// relative to the invoking user's home directory.
	UserHome
	// Raw carries an already-absolute host path used verbatim as the
	// source; only root_dir is prepended for the target.
	Raw
)

// Item is a single tagged variant: one type, one derivePaths operation,
// instead of a Kind-per-type hierarchy.
type Item struct {
	Kind   Kind
	Suffix string // used by Project and UserHome
	Path   string // used by Raw
}

// FromExposed lifts a strategy.ExposedPath (Project or UserHome only) into
// an Item.
func FromExposed(e strategy.ExposedPath) Item {
	switch e.Kind {
	case strategy.UserHome:
		return Item{Kind: UserHome, Suffix: e.Suffix}
	default:
		return Item{Kind: Project, Suffix: e.Suffix}
	}
}

// RawPath builds an Item for an already-resolved absolute host path: a
// closure store path, a /dev entry, or /sys.
func RawPath(p string) Item {
	return Item{Kind: Raw, Path: p}
}

// derivePaths computes the host source and in-sandbox target for item.
func derivePaths(item Item, rootDir, projectDir, homeDir string) (source, target string, err error) {
	switch item.Kind {
	case Project:
		source = pathutil.Merge(projectDir, item.Suffix)
		target = pathutil.Merge(rootDir, source)
	case UserHome:
		if homeDir == "" {
			return "", "", fmt.Errorf("mount: cannot resolve home-relative path %q: no home directory", item.Suffix)
		}

		source = pathutil.Merge(homeDir, item.Suffix)
		target = pathutil.Merge(rootDir, source)
	case Raw:
		source = item.Path
		target = pathutil.Merge(rootDir, item.Path)
	default:
		return "", "", fmt.Errorf("mount: unknown item kind %d", item.Kind)
	}

	return source, target, nil
}
