package launcher

import (
	"fmt"
	"os"
	"os/exec"
)

// runReaper is P1. It owns the sandbox root's lifetime: it creates the
// temporary directory, forks P2 (the namespace root) to operate on it, and
// only removes it after P2 has exited — by which point P2's mount
// namespace, and every bind mount it held, is already gone, so the removal
// cannot block on a live mount.
func runReaper(planPath string) int {
	plan, err := readPlan(planPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	root, err := os.MkdirTemp("", "laurn-root-")
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("launcher: creating sandbox root: %w", err))
		return 1
	}
	defer os.RemoveAll(root)

	plan.RootDir = root

	nestedPlanPath, err := writePlan(plan)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer os.Remove(nestedPlanPath)

	self, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cmd := exec.Command(self, stageNSRoot, nestedPlanPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	code, err := exitCodeOf(cmd.Run())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return code
}
