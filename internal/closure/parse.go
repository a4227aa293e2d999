package closure

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrEmptyOutput is returned when `nix-store --query --requisites` produces
// no store paths at all; a closure is never empty, since it always contains
// at least the entrypoint itself.
var ErrEmptyOutput = errors.New("closure: requisites output is empty")

// parseRequisites splits newline-separated store paths, the format
// `nix-store --query --requisites` prints one path per line.
//
// After splitting, it asserts that every byte of the buffer was accounted
// for by a recognized line: trailing garbage here is a programmer error,
// not a malformed-input condition, since this output is only ever produced
// by nix-store itself. That invariant is enforced with a panic rather than
// an error return.
func parseRequisites(out []byte) ([]string, error) {
	if len(out) == 0 {
		return nil, ErrEmptyOutput
	}

	// nix-store prints exactly one trailing newline; strip it before
	// splitting so we don't manufacture a spurious empty final line.
	buf := out
	if buf[len(buf)-1] == '\n' {
		buf = buf[:len(buf)-1]
	}

	lines := bytes.Split(buf, []byte("\n"))

	paths := make([]string, 0, len(lines))

	var consumed int

	for _, line := range lines {
		if len(line) == 0 {
			return nil, fmt.Errorf("closure: blank line in requisites output")
		}

		paths = append(paths, string(line))
		consumed += len(line) + 1 // +1 for the newline separator rejoined below
	}

	if consumed-1 != len(buf) {
		panic("closure: requisites parser did not consume the whole buffer")
	}

	return paths, nil
}
