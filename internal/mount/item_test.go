package mount

import "testing"

func TestDerivePaths_Project(t *testing.T) {
	t.Parallel()

	source, target, err := derivePaths(Item{Kind: Project, Suffix: ".git"}, "/tmp/root", "/home/user/proj", "/home/user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "/home/user/proj/.git"; source != want {
		t.Fatalf("source = %q, want %q", source, want)
	}

	if want := "/tmp/root/home/user/proj/.git"; target != want {
		t.Fatalf("target = %q, want %q", target, want)
	}
}

func TestDerivePaths_UserHome(t *testing.T) {
	t.Parallel()

	source, target, err := derivePaths(Item{Kind: UserHome, Suffix: ".cargo"}, "/tmp/root", "/home/user/proj", "/home/user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "/home/user/.cargo"; source != want {
		t.Fatalf("source = %q, want %q", source, want)
	}

	if want := "/tmp/root/home/user/.cargo"; target != want {
		t.Fatalf("target = %q, want %q", target, want)
	}
}

func TestDerivePaths_UserHome_NoHomeDir_ReturnsError(t *testing.T) {
	t.Parallel()

	_, _, err := derivePaths(Item{Kind: UserHome, Suffix: ".cargo"}, "/tmp/root", "/home/user/proj", "")
	if err == nil {
		t.Fatal("expected an error when home dir is empty")
	}
}

func TestDerivePaths_Raw(t *testing.T) {
	t.Parallel()

	source, target, err := derivePaths(RawPath("/nix/store/aaa-foo"), "/tmp/root", "/home/user/proj", "/home/user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "/nix/store/aaa-foo"; source != want {
		t.Fatalf("source = %q, want %q", source, want)
	}

	if want := "/tmp/root/nix/store/aaa-foo"; target != want {
		t.Fatalf("target = %q, want %q", target, want)
	}
}

func TestMount_OptionalMissingSource_Skipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := Mount(Item{Kind: UserHome, Suffix: ".nonexistent-xyz"}, dir, "/home/user/proj", "/home/user", RO, true)
	if err != nil {
		t.Fatalf("expected missing optional source to be skipped, got error: %v", err)
	}
}

func TestMount_MandatoryMissingSource_Fails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := Mount(RawPath("/nix/store/does-not-exist-at-all"), dir, "/home/user/proj", "/home/user", RO, false)
	if err == nil {
		t.Fatal("expected an error for a missing mandatory source")
	}

	var statErr *StatError
	if !asStatError(err, &statErr) {
		t.Fatalf("got %T, want *StatError", err)
	}
}

func asStatError(err error, target **StatError) bool {
	e, ok := err.(*StatError)
	if !ok {
		return false
	}

	*target = e

	return true
}
