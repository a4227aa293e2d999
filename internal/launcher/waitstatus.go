package launcher

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrAbnormalExit is returned when a waited-on stage terminated by a signal
// (or stopped/continued) rather than exiting normally. Only a clean exit
// with a code is handled; anything else aborts the run rather than
// attempting to interpret or re-raise the signal.
var ErrAbnormalExit = errors.New("launcher: child did not exit normally")

// exitCodeOf extracts a propagatable exit code from the result of
// (*exec.Cmd).Run, used identically at every waiter in the fork tree
// (P0 on P1, P1 on P2, P2 on P3) so that the sandboxed entrypoint's status
// reaches the original caller unchanged.
func exitCodeOf(runErr error) (int, error) {
	if runErr == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError

	if errors.As(runErr, &exitErr) {
		code := exitErr.ExitCode()
		if code == -1 {
			return 0, fmt.Errorf("%w: %v", ErrAbnormalExit, exitErr)
		}

		return code, nil
	}

	return 0, fmt.Errorf("launcher: spawning child: %w", runErr)
}
