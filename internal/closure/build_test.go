package closure

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

// fakeCmd scripts a single subprocess invocation for tests, avoiding any
// dependency on a real Nix installation.
type fakeCmd struct {
	name string
	args []string

	stdout   io.Writer
	wantExit int
	output   string

	stdinBuf bytes.Buffer
}

func (c *fakeCmd) StdinPipe() (io.WriteCloser, error) {
	return nopCloser{&c.stdinBuf}, nil
}

func (c *fakeCmd) SetStdout(w io.Writer) { c.stdout = w }

func (c *fakeCmd) Start() error { return nil }

func (c *fakeCmd) Wait() error { return c.finish() }

func (c *fakeCmd) Run() error { return c.finish() }

func (c *fakeCmd) finish() error {
	if c.stdout != nil {
		_, _ = io.WriteString(c.stdout, c.output)
	}

	if c.wantExit != 0 {
		return fmt.Errorf("fake exit %d", c.wantExit)
	}

	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func scriptedRunner(t *testing.T, script map[string]string) runner {
	t.Helper()

	return func(name string, args ...string) cmd {
		key := name + " " + strings.Join(args, " ")
		out, ok := script[key]

		if !ok {
			t.Fatalf("unscripted command: %s", key)
		}

		return &fakeCmd{name: name, args: args, output: out}
	}
}

func TestRealize_FullPipeline(t *testing.T) {
	t.Parallel()

	run := scriptedRunner(t, map[string]string{
		"nix-instantiate -": "/nix/store/drv-wrapper.drv\n",
		"nix-store --query --outputs --force-realize /nix/store/drv-wrapper.drv": "/nix/store/out-wrapper\n",
		"nix-store --query --requisites /nix/store/out-wrapper": "/nix/store/dep-a\n/nix/store/out-wrapper\n",
	})

	c, err := Realize(run, "/home/user/project/laurn.nix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Entrypoint != "/nix/store/out-wrapper" {
		t.Fatalf("entrypoint = %q, want /nix/store/out-wrapper", c.Entrypoint)
	}

	if len(c.Paths) != 2 {
		t.Fatalf("paths = %v, want 2 entries", c.Paths)
	}
}

func TestInstantiate_EmptyOutput_ReturnsTruncatedError(t *testing.T) {
	t.Parallel()

	run := scriptedRunner(t, map[string]string{
		"nix-instantiate -": "",
	})

	_, err := instantiate(run, "/home/user/project/laurn.nix")
	if err == nil {
		t.Fatal("expected an error for empty nix-instantiate output")
	}

	var instErr *InstantiationError
	if !asInstantiationError(err, &instErr) {
		t.Fatalf("got %T, want *InstantiationError", err)
	}

	if instErr.Reason != ReasonTruncated {
		t.Fatalf("reason = %v, want ReasonTruncated", instErr.Reason)
	}
}

func asInstantiationError(err error, target **InstantiationError) bool {
	e, ok := err.(*InstantiationError)
	if !ok {
		return false
	}

	*target = e

	return true
}
