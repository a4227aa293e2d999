package mount

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Mode selects whether a mount is left writable or remounted read-only
// after the initial bind.
type Mode int

const (
	// RW bind-mounts the source without a read-only remount.
	RW Mode = iota
	// RO bind-mounts, then remounts read-only; a single bind call cannot
	// be made read-only atomically on Linux.
	RO
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// StatError wraps a failure to stat a mandatory (non-policy-driven) mount
// source, e.g. a closure path or a /dev entry.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("mount: stat %s: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error { return e.Err }

// SetupError wraps any mkdir/mknod/mount failure during target preparation.
type SetupError struct {
	Op   string
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("mount: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Mount establishes a bind mount from item's host source into the sandbox
// at rootDir, creating a same-kind empty target node first.
//
// When optional is true, a missing source is silently skipped (the policy
// item case); when false, a missing source is fatal (the closure/device
// case).
func Mount(item Item, rootDir, projectDir, homeDir string, mode Mode, optional bool) error {
	source, target, err := derivePaths(item, rootDir, projectDir, homeDir)
	if err != nil {
		return err
	}

	info, err := os.Stat(source)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return &StatError{Path: source, Err: err}
	}

	if err := mkdirParent(target); err != nil {
		return err
	}

	if err := createTargetNode(target, info); err != nil {
		return err
	}

	if err := bind(source, target); err != nil {
		return err
	}

	if mode == RO {
		if err := remountReadOnly(target); err != nil {
			return err
		}
	}

	return nil
}

func mkdirParent(target string) error {
	parent := filepath.Dir(target)

	if err := os.MkdirAll(parent, dirMode); err != nil && !errors.Is(err, os.ErrExist) {
		return &SetupError{Op: "mkdir", Path: parent, Err: err}
	}

	return nil
}

// createTargetNode creates an empty node at target matching source's kind:
// directories get a directory, regular and character-special files get an
// empty regular file (mknod is unavailable in an unprivileged user
// namespace, so the bind mount itself provides the device semantics once
// performed), anything else aborts the run.
func createTargetNode(target string, source os.FileInfo) error {
	mode := source.Mode()

	switch {
	case mode.IsDir():
		if err := os.Mkdir(target, dirMode); err != nil && !errors.Is(err, os.ErrExist) {
			return &SetupError{Op: "mkdir", Path: target, Err: err}
		}
	case mode.IsRegular(), mode&os.ModeCharDevice != 0:
		f, err := os.OpenFile(target, os.O_CREATE, fileMode)
		if err != nil && !errors.Is(err, os.ErrExist) {
			return &SetupError{Op: "create", Path: target, Err: err}
		}

		if f != nil {
			_ = f.Close()
		}
	default:
		return &SetupError{Op: "mount", Path: target, Err: fmt.Errorf("unsupported source file kind %v", mode)}
	}

	return nil
}

func bind(source, target string) error {
	if err := unix.Mount(source, target, "", unix.MS_BIND|unix.MS_PRIVATE|unix.MS_REC, ""); err != nil {
		return &SetupError{Op: "bind mount", Path: target, Err: err}
	}

	return nil
}

func remountReadOnly(target string) error {
	if err := unix.Mount("", target, "", unix.MS_RDONLY|unix.MS_REMOUNT|unix.MS_PRIVATE|unix.MS_BIND, ""); err != nil {
		return &SetupError{Op: "ro remount", Path: target, Err: err}
	}

	return nil
}
