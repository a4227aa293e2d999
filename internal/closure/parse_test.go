package closure

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRequisites_SingleTrailingNewline(t *testing.T) {
	t.Parallel()

	got, err := parseRequisites([]byte("/nix/store/aaa-foo\n/nix/store/bbb-bar\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"/nix/store/aaa-foo", "/nix/store/bbb-bar"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRequisites_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	got, err := parseRequisites([]byte("/nix/store/aaa-foo"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"/nix/store/aaa-foo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRequisites_EmptyInput_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := parseRequisites(nil)
	if err != ErrEmptyOutput {
		t.Fatalf("got err %v, want ErrEmptyOutput", err)
	}
}

func TestParseRequisites_BlankLine_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := parseRequisites([]byte("/nix/store/aaa-foo\n\n/nix/store/bbb-bar\n"))
	if err == nil {
		t.Fatal("expected an error for a blank line, got nil")
	}
}

func TestParseRequisites_SingleEntry(t *testing.T) {
	t.Parallel()

	got, err := parseRequisites([]byte("/nix/store/ccc-only\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"/nix/store/ccc-only"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}
