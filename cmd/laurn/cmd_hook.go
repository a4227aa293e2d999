package main

import (
	"fmt"
	"io"
	"os"
)

// runHookCommand implements `laurn hook bash`: it emits a bash snippet
// that, once sourced into PROMPT_COMMAND, auto-invokes `laurn shell`
// whenever the working directory changes into one containing a
// `.laurnrc`.
//
// The snippet guards PROMPT_COMMAND with a regex check for _laurn_hook
// before prepending, so sourcing it twice (e.g. two interactive shells
// inheriting the same rc file) is harmless.
func runHookCommand(stdout, stderr io.Writer, args []string) int {
	if len(args) == 0 || args[0] != "bash" {
		fprintError(stderr, fmt.Errorf("laurn hook: only \"bash\" is supported"))

		return 1
	}

	self, err := os.Executable()
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	fprintf(stdout, bashHookTemplate, self)

	return 0
}

const bashHookTemplate = `
LAURN_PREVIOUS_PATH=""
_laurn_hook() {
    local previous_exit_status=$?;
    if [ "$(pwd)" != "$LAURN_PREVIOUS_PATH" ]; then
        LAURN_PREVIOUS_PATH="$(pwd)";
        if [ -e .laurnrc ]; then
           %s shell;
        else
            return $previous_exit_status;
        fi
    else
        return $previous_exit_status;
    fi
}
if ! [[ "${PROMPT_COMMAND:-}" =~ _laurn_hook ]]; then
  PROMPT_COMMAND="_laurn_hook${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
fi
`
