// Package strategy resolves a policy mode tag into the set of host paths
// exposed read-only or read-write inside the sandbox.
package strategy

import "fmt"

// PathKind distinguishes how an ExposedPath's Suffix is resolved to a host
// source and a sandbox target: a single ExposedPath type with a Kind
// discriminant, rather than separate types per kind joined by an interface.
type PathKind int

const (
	// Project suffixes are resolved relative to the project directory on
	// both the host and the sandbox side.
	Project PathKind = iota + 1
	// UserHome suffixes are resolved relative to the invoking user's home
	// directory on both the host and the sandbox side.
	UserHome
)

func (k PathKind) String() string {
	switch k {
	case Project:
		return "project"
	case UserHome:
		return "user-home"
	default:
		return fmt.Sprintf("PathKind(%d)", int(k))
	}
}

// ExposedPath is a policy-driven item: a project- or home-relative suffix
// that the mount planner resolves to a (source, target) pair. Unlike the
// closure entries and device nodes the launcher mounts unconditionally, an
// ExposedPath whose resolved host source does not exist is silently
// skipped.
type ExposedPath struct {
	Kind   PathKind
	Suffix string
}

func project(suffix string) ExposedPath  { return ExposedPath{Kind: Project, Suffix: suffix} }
func userHome(suffix string) ExposedPath { return ExposedPath{Kind: UserHome, Suffix: suffix} }

// Policy is a pair of lists of ExposedPath: ro_paths are bind-mounted
// read-only, rw_paths read-write.
type Policy struct {
	ROPaths []ExposedPath
	RWPaths []ExposedPath
}

// builtinROPaths are always present in ro_paths whenever a non-empty policy
// is selected, appended in this exact order.
var builtinROPaths = []ExposedPath{
	project(".git"),
	project(".laurnrc"),
	project("laurn.nix"),
	project("nix"),
}

// newWithBuiltins appends the built-in project-relative read-only entries to
// roPaths and returns the resulting Policy. The "none" mode bypasses this
// constructor entirely and returns the empty Policy verbatim.
func newWithBuiltins(roPaths, rwPaths []ExposedPath) Policy {
	out := make([]ExposedPath, 0, len(roPaths)+len(builtinROPaths))
	out = append(out, roPaths...)
	out = append(out, builtinROPaths...)

	return Policy{ROPaths: out, RWPaths: rwPaths}
}

// Mode is the policy mode tag read from the `.laurnrc` `mode` key.
type Mode string

const (
	// ModeNone applies no filesystem policy beyond what the launcher
	// always mounts (closure, project directory, device nodes).
	ModeNone Mode = "none"
	// ModeRust exposes ~/.cargo read-write, plus the built-in read-only
	// project entries.
	ModeRust Mode = "rust"
)

// Resolve maps a mode tag to a Policy.
func Resolve(mode Mode) (Policy, error) {
	switch mode {
	case ModeNone, "":
		return Policy{}, nil
	case ModeRust:
		return newWithBuiltins(nil, []ExposedPath{userHome(".cargo")}), nil
	default:
		return Policy{}, fmt.Errorf("strategy: unknown mode %q", mode)
	}
}
