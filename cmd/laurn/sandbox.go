package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/baloo/laurn/internal/closure"
	"github.com/baloo/laurn/internal/debuglog"
	"github.com/baloo/laurn/internal/launcher"
	"github.com/baloo/laurn/internal/mount"
	"github.com/baloo/laurn/internal/policyfile"
	"github.com/baloo/laurn/internal/strategy"
)

// ErrNoParentDirectory means the expression file's parent directory is the
// filesystem root: the project directory must itself have somewhere to
// live once bind-mounted into the sandbox.
var ErrNoParentDirectory = errors.New("laurn: project has no parent directory")

// ErrNulByte is the host-precondition failure for a command token
// containing a NUL byte, which cannot cross execve's argv.
var ErrNulByte = errors.New("laurn: command argument contains a NUL byte")

// launchInput bundles everything needed to resolve a policy into a launch
// plan and hand it to the launcher; shared by the run and shell
// subcommands, which differ only in how they obtain these values.
type launchInput struct {
	exprPath   string
	projectDir string
	homeDir    string
	mode       strategy.Mode
	network    policyfile.NetworkMode
	fakeRoot   bool
	command    []string
	logger     *debuglog.Logger
}

func launchSandbox(stdout, stderr io.Writer, in launchInput) int {
	for _, tok := range in.command {
		if containsNulByte(tok) {
			fprintError(stderr, ErrNulByte)

			return 1
		}
	}

	policy, err := strategy.Resolve(in.mode)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	in.logger.PolicySummary(string(in.mode), len(policy.ROPaths), len(policy.RWPaths))

	container, err := closure.Realize(closure.DefaultRunner, in.exprPath)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	in.logger.Logf("closure entrypoint: %s (%d paths)", container.Entrypoint, len(container.Paths))

	plan := launcher.Plan{
		ProjectDir:   in.projectDir,
		HomeDir:      in.homeDir,
		Entrypoint:   container.Entrypoint,
		ClosurePaths: container.Paths,
		ROPaths:      toMountItems(policy.ROPaths),
		RWPaths:      toMountItems(policy.RWPaths),
		NetworkMode:  in.network,
		Command:      in.command,
	}

	if in.fakeRoot {
		plan.FakeRoot = &launcher.FakeRootRequest{UID: os.Getuid(), GID: os.Getgid()}
	}

	names := []string{"mount", "user", "pid", "ipc"}
	if in.network == policyfile.Isolated {
		names = append(names, "net")
	}

	in.logger.NamespaceFlags(names)

	code, err := launcher.Launch(plan)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	return code
}

func toMountItems(paths []strategy.ExposedPath) []mount.Item {
	items := make([]mount.Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, mount.FromExposed(p))
	}

	return items
}

func containsNulByte(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return true
		}
	}

	return false
}

// resolveProject canonicalises exprPath and derives the project directory
// (its parent), rejecting an expression that lives directly at the
// filesystem root.
func resolveProject(exprPath string) (canonicalExpr, projectDir string, err error) {
	abs, err := filepath.Abs(exprPath)
	if err != nil {
		return "", "", fmt.Errorf("laurn: resolving %s: %w", exprPath, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", "", fmt.Errorf("laurn: resolving %s: %w", exprPath, err)
	}

	dir := filepath.Dir(resolved)
	if dir == string(filepath.Separator) {
		return "", "", ErrNoParentDirectory
	}

	return resolved, dir, nil
}

func resolveHomeDir(env map[string]string) (string, error) {
	if home := env["HOME"]; home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("laurn: resolving home directory: %w", err)
	}

	return home, nil
}

func debuglogFor(enabled bool, stderr io.Writer) *debuglog.Logger {
	if !enabled {
		return debuglog.New(nil)
	}

	return debuglog.New(stderr)
}
