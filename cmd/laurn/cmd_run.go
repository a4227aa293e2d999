package main

import (
	"fmt"
	"io"

	"github.com/baloo/laurn/internal/globalconfig"
	"github.com/baloo/laurn/internal/policyfile"
)

// runRunCommand implements `laurn run -p <file> [tokens...]`.
//
// This never reads a project `.laurnrc`: policy always starts from
// policyfile.Default() (mode=none, network=isolated). The machine-wide
// global defaults file may still adjust it, since that layer is not
// project-local.
func runRunCommand(stdout, stderr io.Writer, args []string, env map[string]string) int {
	flags := newCommonFlags("run")
	pkg := flags.StringP("package", "p", "", "package-set expression to build")
	debug := flags.Bool("debug", false, "print sandbox startup details to stderr")
	root := flags.Bool("root", false, "present the invoking user as uid/gid 0 inside the sandbox")

	if err := flags.Parse(args); err != nil {
		fprintError(stderr, err)

		return 1
	}

	if *pkg == "" {
		fprintError(stderr, fmt.Errorf("laurn run: -p/--package is required"))

		return 1
	}

	logger := debuglogFor(*debug, stderr)
	logger.Section("laurn run")

	exprPath, projectDir, err := resolveProject(*pkg)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	homeDir, err := resolveHomeDir(env)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	cfg := policyfile.Default()

	if path, perr := globalconfig.Path(env); perr == nil {
		if defaults, lerr := globalconfig.Load(path); lerr == nil {
			cfg = globalconfig.Apply(cfg, defaults)
		}
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
