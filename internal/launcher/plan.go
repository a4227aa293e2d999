// Package launcher implements the sandbox launcher: a three-process fork
// tree that unshares namespaces, sequences the mounts, chroots, and execs
// the sandboxed command.
package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/baloo/laurn/internal/mount"
	"github.com/baloo/laurn/internal/policyfile"
)

// FakeRootRequest captures the (uid, gid) pair to map as "0 <uid/gid> 1"
// inside the sandbox's user namespace.
type FakeRootRequest struct {
	UID int
	GID int
}

// Plan is everything P1/P2/P3 need, serialized to a temp file and handed
// down the re-exec chain since each stage is a freshly exec'd process with
// no inherited Go state beyond argv, env, and open file descriptors.
type Plan struct {
	ProjectDir   string
	HomeDir      string
	Entrypoint   string
	ClosurePaths []string
	ROPaths      []mount.Item
	RWPaths      []mount.Item
	NetworkMode  policyfile.NetworkMode
	FakeRoot     *FakeRootRequest
	Command      []string

	// RootDir is empty when P0 builds the plan; P1 fills it in once it has
	// created the sandbox root, then re-serializes the plan for P2 and P3.
	RootDir string
}

func writePlan(plan Plan) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("launcher: encoding plan: %w", err)
	}

	path := filepath.Join(os.TempDir(), "laurn-plan-"+uuid.NewString()+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("launcher: writing plan: %w", err)
	}

	return path, nil
}

func readPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("launcher: reading plan: %w", err)
	}

	var plan Plan

	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("launcher: decoding plan: %w", err)
	}

	return plan, nil
}
