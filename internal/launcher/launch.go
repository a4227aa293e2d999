package launcher

import (
	"fmt"
	"os"
	"os/exec"
)

// Launch runs the three-process fork tree (P1 reaper, P2 namespace root, P3
// sandboxed shell) and returns the sandboxed entrypoint's exit code. It is
// called once, from P0, the original `laurn` invocation.
func Launch(plan Plan) (int, error) {
	self, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("launcher: locating own executable: %w", err)
	}

	planPath, err := writePlan(plan)
	if err != nil {
		return 0, err
	}
	defer os.Remove(planPath)

	cmd := exec.Command(self, stageReaper, planPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	code, err := exitCodeOf(cmd.Run())
	if err != nil {
		return 0, err
	}

	return code, nil
}
