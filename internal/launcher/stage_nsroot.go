package launcher

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/baloo/laurn/internal/policyfile"
)

// runNSRoot is P2, the namespace root. It unshares every namespace the
// sandbox needs, optionally maps the invoking user to uid/gid 0 (the
// fake-root request), and forks P3.
//
// P2 calls unix.Unshare itself rather than asking for the namespaces via
// SysProcAttr.Cloneflags on its own creation: CLONE_NEWPID only affects
// processes unshare's caller subsequently forks, never the caller itself.
// The process forked immediately below therefore becomes PID 1 in the new
// namespace.
func runNSRoot(planPath string) int {
	plan, err := readPlan(planPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	flags := unix.CLONE_NEWNS | unix.CLONE_NEWUSER | unix.CLONE_NEWPID | unix.CLONE_NEWIPC
	if plan.NetworkMode != policyfile.Exposed {
		flags |= unix.CLONE_NEWNET
	}

	if err := unix.Unshare(flags); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("launcher: unshare: %w", err))
		return 1
	}

	if plan.FakeRoot != nil {
		if err := writeFakeRootMappings(*plan.FakeRoot); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	self, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cmd := exec.Command(self, stageShell, planPath)
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

// writeFakeRootMappings presents the invoking user as uid 0 / gid 0 inside
// the sandbox. Writing "deny" to setgroups before gid_map is mandatory on
// modern kernels; writing gid_map first fails with EPERM.
func writeFakeRootMappings(req FakeRootRequest) error {
	if err := os.WriteFile("/proc/self/setgroups", []byte("deny"), 0o644); err != nil {
		return fmt.Errorf("launcher: writing setgroups: %w", err)
	}

	if err := os.WriteFile("/proc/self/uid_map", []byte(fmt.Sprintf("0 %d 1", req.UID)), 0o644); err != nil {
		return fmt.Errorf("launcher: writing uid_map: %w", err)
	}

	if err := os.WriteFile("/proc/self/gid_map", []byte(fmt.Sprintf("0 %d 1", req.GID)), 0o644); err != nil {
		return fmt.Errorf("launcher: writing gid_map: %w", err)
	}

	return nil
}
