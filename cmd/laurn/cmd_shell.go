package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/baloo/laurn/internal/globalconfig"
	"github.com/baloo/laurn/internal/policyfile"
)

// runShellCommand implements `laurn shell`: resolve <cwd>/laurn.nix, load
// policy from <cwd>/.laurnrc, run interactively.
func runShellCommand(stdout, stderr io.Writer, args []string, env map[string]string) int {
	flags := newCommonFlags("shell")
	debug := flags.Bool("debug", false, "print sandbox startup details to stderr")
	root := flags.Bool("root", false, "present the invoking user as uid/gid 0 inside the sandbox")

	if err := flags.Parse(args); err != nil {
		fprintError(stderr, err)

		return 1
	}

	logger := debuglogFor(*debug, stderr)
	logger.Section("laurn shell")

	cwd, err := os.Getwd()
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	exprPath, projectDir, err := resolveProject(filepath.Join(cwd, "laurn.nix"))
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	homeDir, err := resolveHomeDir(env)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	cfg, err := resolveShellPolicy(projectDir, env)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	return launchSandbox(stdout, stderr, launchInput{
		exprPath:   exprPath,
		projectDir: projectDir,
		homeDir:    homeDir,
		mode:       cfg.Laurn.Mode,
		network:    cfg.Laurn.Network,
		fakeRoot:   *root,
		command:    flags.Args(),
		logger:     logger,
	})
}

// resolveShellPolicy loads <projectDir>/.laurnrc when present; otherwise it
// falls back to the machine-wide global defaults layered over
// policyfile.Default(), since a project with no policy file of its own
// should still honor a user's machine-wide preference.
func resolveShellPolicy(projectDir string, env map[string]string) (policyfile.Config, error) {
	rcPath := filepath.Join(projectDir, ".laurnrc")

	if _, err := os.Stat(rcPath); err == nil {
		return policyfile.Load(rcPath)
	}

	cfg := policyfile.Default()

	path, err := globalconfig.Path(env)
	if err != nil {
		return cfg, nil
	}

	defaults, err := globalconfig.Load(path)
	if err != nil {
		return cfg, nil
	}

	return globalconfig.Apply(cfg, defaults), nil
}
