package launcher

import (
	"errors"
	"os/exec"
	"testing"
)

func TestExitCodeOf_Nil_ReturnsZero(t *testing.T) {
	t.Parallel()

	code, err := exitCodeOf(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if code != 0 {
		t.Fatalf("code = %d, want 0", code)
	}
}

func TestExitCodeOf_NonZeroExit_PropagatesCode(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("sh", "-c", "exit 7")

	runErr := cmd.Run()
	if runErr == nil {
		t.Fatal("expected sh -c 'exit 7' to fail")
	}

	code, err := exitCodeOf(runErr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if code != 7 {
		t.Fatalf("code = %d, want 7", code)
	}
}

func TestExitCodeOf_Signaled_ReturnsAbnormalExit(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("sh", "-c", "kill -TERM $$")

	runErr := cmd.Run()
	if runErr == nil {
		t.Fatal("expected self-signaled process to report failure")
	}

	_, err := exitCodeOf(runErr)
	if err == nil {
		t.Fatal("expected an error for a signaled child")
	}

	if !errors.Is(err, ErrAbnormalExit) {
		t.Fatalf("got %v, want ErrAbnormalExit", err)
	}
}
