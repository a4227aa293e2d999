package main

import (
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

// ErrNotLinux is returned when laurn is invoked on a non-Linux kernel; the
// launcher depends on Linux-specific namespace and mount syscalls.
var ErrNotLinux = errors.New("laurn requires Linux")

func checkPlatformPrerequisites() error {
	if runtime.GOOS != "linux" {
		return ErrNotLinux
	}

	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func fprintError(out io.Writer, err error) {
	if isTerminal() {
		fprintln(out, "\033[31mlaurn: error:\033[0m", err)
	} else {
		fprintln(out, "laurn: error:", err)
	}
}
