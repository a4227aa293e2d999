package closure

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

// Container is a realised package-set closure: a single entrypoint store
// path plus every store path it (transitively) depends on. It is the
// thing that gets bind-mounted read-only into the sandbox.
type Container struct {
	// Entrypoint is the wrapper script's store path; it becomes the
	// sandbox's exec target.
	Entrypoint string
	// Paths is the full closure, entrypoint included, each mounted
	// read-only at the same absolute path inside the sandbox.
	Paths []string
}

// cmd is the subset of *exec.Cmd that build.go needs; it exists so tests can
// substitute a fake runner instead of spawning real nix binaries.
type cmd interface {
	StdinPipe() (io.WriteCloser, error)
	SetStdout(w io.Writer)
	Start() error
	Wait() error
	Run() error
}

type runner func(name string, args ...string) cmd

// execCmd adapts *exec.Cmd to the cmd interface.
type execCmd struct {
	*exec.Cmd
}

func (c *execCmd) SetStdout(w io.Writer) { c.Cmd.Stdout = w }

// DefaultRunner spawns real OS processes via os/exec.
func DefaultRunner(name string, args ...string) cmd {
	return &execCmd{Cmd: exec.Command(name, args...)}
}

// Realize instantiates exprPath's wrapper derivation, force-builds it, and
// queries its full closure, returning a Container describing what must be
// bind-mounted into the sandbox.
//
// This is a three-subprocess pipeline: instantiate, force-realize, then
// query --requisites.
func Realize(run runner, exprPath string) (Container, error) {
	drvPath, err := instantiate(run, exprPath)
	if err != nil {
		return Container{}, err
	}

	entrypoint, err := realize(run, drvPath)
	if err != nil {
		return Container{}, err
	}

	paths, err := requisites(run, entrypoint)
	if err != nil {
		return Container{}, err
	}

	return Container{Entrypoint: entrypoint, Paths: paths}, nil
}

// RequisitesError wraps a failure of the `nix-store --query --requisites`
// step.
type RequisitesError struct {
	Err error
}

func (e *RequisitesError) Error() string {
	return fmt.Sprintf("closure: nix-store --query --requisites: %v", e.Err)
}

func (e *RequisitesError) Unwrap() error { return e.Err }

func requisites(run runner, storePath string) ([]string, error) {
	c := run("nix-store", "--query", "--requisites", storePath)

	var stdout bytes.Buffer

	c.SetStdout(&stdout)

	if err := c.Run(); err != nil {
		return nil, &RequisitesError{Err: err}
	}

	return parseRequisites(stdout.Bytes())
}
