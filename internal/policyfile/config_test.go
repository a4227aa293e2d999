package policyfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baloo/laurn/internal/policyfile"
	"github.com/baloo/laurn/internal/strategy"
	"github.com/stretchr/testify/require"
)

func TestLoad_RustModeExposedNetwork(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".laurnrc")
	contents := "[laurn]\nmode = \"rust\"\nnetwork = \"exposed\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := policyfile.Load(path)
	require.NoError(t, err)
	require.Equal(t, strategy.ModeRust, cfg.Laurn.Mode)
	require.Equal(t, policyfile.Exposed, cfg.Laurn.Network)
}

func TestLoad_EmptyFile_DefaultsToNoneAndIsolated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".laurnrc")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	cfg, err := policyfile.Load(path)
	require.NoError(t, err)
	require.Equal(t, strategy.ModeNone, cfg.Laurn.Mode)
	require.Equal(t, policyfile.Isolated, cfg.Laurn.Network)
}

func TestLoad_UnknownMode_ReturnsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".laurnrc")
	require.NoError(t, os.WriteFile(path, []byte("[laurn]\nmode = \"cobol\"\n"), 0o644))

	_, err := policyfile.Load(path)
	require.Error(t, err)
}

func TestLoad_UnknownKeyInLaurnTable_ReturnsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".laurnrc")
	require.NoError(t, os.WriteFile(path, []byte("[laurn]\nmode = \"none\"\nnetwerk = \"isolated\"\n"), 0o644))

	_, err := policyfile.Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	t.Parallel()

	_, err := policyfile.Load(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestDefault_MatchesRunSubcommandDefault(t *testing.T) {
	t.Parallel()

	cfg := policyfile.Default()
	require.Equal(t, strategy.ModeNone, cfg.Laurn.Mode)
	require.Equal(t, policyfile.Isolated, cfg.Laurn.Network)
}
