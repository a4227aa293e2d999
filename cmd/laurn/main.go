// Command laurn builds and enters a Nix-defined sandbox for a project's
// development shell.
package main

import (
	"os"
	"strings"

	"github.com/baloo/laurn/internal/launcher"
)

func main() {
	if code, handled := launcher.MaybeRunStage(os.Args[1:]); handled {
		os.Exit(code)
	}

	os.Exit(Run(os.Stdin, os.Stdout, os.Stderr, os.Args, environMap(os.Environ())))
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			env[key] = value
		}
	}

	return env
}
