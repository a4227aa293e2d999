package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

const usageHelp = `laurn - reproducible Nix sandbox launcher

Usage:
  laurn run -p <file> [flags] [command...]
  laurn shell [flags]
  laurn hook bash

Commands:
  run    Build and sandbox the expression at <file>
  shell  Resolve ./laurn.nix and ./.laurnrc, run interactively
  hook   Emit a shell integration snippet

Flags (run/shell):
      --debug          Print sandbox startup details to stderr
      --root           Present the invoking user as uid/gid 0 inside the sandbox
  -p, --package <file>  Package-set expression to build (run only)
`

// Run is laurn's entry point, isolated from process globals so it can be
// driven directly from tests instead of through a subprocess.
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string) int {
	if err := checkPlatformPrerequisites(); err != nil {
		fprintError(stderr, err)

		return 1
	}

	if len(args) < 2 {
		printUsage(stdout)

		return 0
	}

	_ = stdin // reserved: the sandboxed process inherits the real os.Stdin directly

	switch args[1] {
	case "run":
		return runRunCommand(stdout, stderr, args[2:], env)
	case "shell":
		return runShellCommand(stdout, stderr, args[2:], env)
	case "hook":
		return runHookCommand(stdout, stderr, args[2:])
	case "-h", "--help", "help":
		printUsage(stdout)

		return 0
	default:
		fprintError(stderr, errUnknownCommand(args[1]))

		return 1
	}
}

func printUsage(out io.Writer) {
	fprintln(out, usageHelp)
}

func newCommonFlags(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetInterspersed(false) // stop parsing at the first positional token
	flags.Usage = func() {}

	return flags
}
