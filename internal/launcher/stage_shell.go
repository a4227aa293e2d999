package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/baloo/laurn/internal/mount"
)

// runShell is P3. By the time it runs it is already PID 1 in a fresh PID
// namespace. It builds the sandbox root's mount surface, chroots into it,
// mounts the filesystems that only make sense relative to the new root,
// and execs the closure entrypoint.
func runShell(planPath string) int {
	plan, err := readPlan(planPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := setupMounts(plan); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := unix.Chroot(plan.RootDir); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("launcher: chroot: %w", err))
		return 1
	}

	if err := unix.Chdir(plan.ProjectDir); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("launcher: chdir %s: %w", plan.ProjectDir, err))
		return 1
	}

	if err := mountFreshFilesystems(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var argv []string
	if len(plan.Command) > 0 {
		argv = append([]string{"laurn-shell"}, plan.Command...)
	}
	// An empty command list means argv = nil; the entrypoint's tolerance of
	// empty argv is assumed here, not contracted.

	if err := unix.Exec(plan.Entrypoint, argv, os.Environ()); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("launcher: exec %s: %w", plan.Entrypoint, err))
		return 1
	}

	return 1 // unreachable: unix.Exec only returns on failure
}

// setupMounts performs every bind mount under plan.RootDir, in a fixed
// order, entirely before chroot.
func setupMounts(plan Plan) error {
	for _, p := range plan.ClosurePaths {
		if err := mount.Mount(mount.RawPath(p), plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RO, false); err != nil {
			return err
		}
	}

	if err := mount.Mount(mount.RawPath("/etc/resolv.conf"), plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RW, false); err != nil {
		return err
	}

	if err := mount.Mount(mount.RawPath(plan.ProjectDir), plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RW, false); err != nil {
		return err
	}

	for _, item := range plan.ROPaths {
		if err := mount.Mount(item, plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RO, true); err != nil {
			return err
		}
	}

	for _, item := range plan.RWPaths {
		if err := mount.Mount(item, plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RW, true); err != nil {
			return err
		}
	}

	for _, dir := range []string{"proc", "sys", "dev", filepath.Join("dev", "pts"), filepath.Join("dev", "shm")} {
		if err := os.MkdirAll(filepath.Join(plan.RootDir, dir), 0o755); err != nil {
			return fmt.Errorf("launcher: creating %s: %w", dir, err)
		}
	}

	devices := []string{
		"/dev/null", "/dev/zero", "/dev/full",
		"/dev/random", "/dev/urandom", "/dev/tty", "/dev/console",
	}
	for _, dev := range devices {
		if err := mount.Mount(mount.RawPath(dev), plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RW, false); err != nil {
			return err
		}
	}

	if err := mount.Mount(mount.RawPath("/sys"), plan.RootDir, plan.ProjectDir, plan.HomeDir, mount.RW, false); err != nil {
		return err
	}

	return nil
}

// mountFreshFilesystems mounts proc, devpts, and a tmpfs for /dev/shm. It
// must run after chroot: these mounts are meaningless outside the new root.
func mountFreshFilesystems() error {
	noisy := uintptr(unix.MS_NOSUID | unix.MS_NODEV | unix.MS_NOEXEC)

	if err := unix.Mount("proc", "/proc", "proc", noisy, ""); err != nil {
		return fmt.Errorf("launcher: mount proc: %w", err)
	}

	if err := unix.Mount("devpts", "/dev/pts", "devpts", noisy, "mode=620,ptmxmode=666"); err != nil {
		return fmt.Errorf("launcher: mount devpts: %w", err)
	}

	f, err := os.OpenFile("/dev/ptmx", os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("launcher: creating /dev/ptmx: %w", err)
	}
	_ = f.Close()

	if err := unix.Mount("/dev/pts/ptmx", "/dev/ptmx", "", unix.MS_BIND|unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return fmt.Errorf("launcher: bind /dev/pts/ptmx over /dev/ptmx: %w", err)
	}

	if err := unix.Mount("tmpfs", "/dev/shm", "tmpfs", noisy, "size=65536k"); err != nil {
		return fmt.Errorf("launcher: mount /dev/shm: %w", err)
	}

	return nil
}
