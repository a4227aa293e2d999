// Package debuglog prints the human-readable startup narrative behind
// `laurn --debug` and, separately, builds the optional structured file
// logger used for persistent diagnostics.
package debuglog

import (
	"fmt"
	"io"
	"strings"
)

// Logger provides structured debug output for sandbox startup. It is
// disabled by default (when output is nil) and writes to stderr when
// enabled via --debug.
type Logger struct {
	output io.Writer
}

// New creates a Logger. If output is nil, every method is a no-op.
func New(output io.Writer) *Logger {
	return &Logger{output: output}
}

// Enabled reports whether this logger actually writes anywhere.
func (l *Logger) Enabled() bool {
	return l.output != nil
}

// Section prints a section header.
func (l *Logger) Section(name string) {
	if l.output == nil {
		return
	}

	_, _ = fmt.Fprintf(l.output, "\n=== %s ===\n", name)
}

// Logf prints a formatted debug line.
func (l *Logger) Logf(format string, args ...any) {
	if l.output == nil {
		return
	}

	_, _ = fmt.Fprintf(l.output, format+"\n", args...)
}

// Bulletf prints an indented bullet-point line.
func (l *Logger) Bulletf(format string, args ...any) {
	if l.output == nil {
		return
	}

	_, _ = fmt.Fprintf(l.output, "  • "+format+"\n", args...)
}

// Mount prints one step of the mount sequence: source, target, and whether
// it landed read-only or read-write.
func (l *Logger) Mount(source, target, mode string) {
	if l.output == nil {
		return
	}

	if source == target {
		_, _ = fmt.Fprintf(l.output, "  %s [%s]\n", target, mode)
	} else {
		_, _ = fmt.Fprintf(l.output, "  %s -> %s [%s]\n", source, target, mode)
	}
}

// NamespaceFlags prints the set of namespaces about to be unshared.
func (l *Logger) NamespaceFlags(names []string) {
	if l.output == nil {
		return
	}

	if len(names) == 0 {
		_, _ = fmt.Fprintf(l.output, "  namespaces: (none)\n")

		return
	}

	_, _ = fmt.Fprintf(l.output, "  namespaces: %s\n", strings.Join(names, ", "))
}

// PolicySummary prints the resolved policy's path counts.
func (l *Logger) PolicySummary(mode string, roCount, rwCount int) {
	if l.output == nil {
		return
	}

	_, _ = fmt.Fprintf(l.output, "  mode=%s ro_paths=%d rw_paths=%d\n", mode, roCount, rwCount)
}
