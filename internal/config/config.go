// Package config locates the Cargo workspace and defines the fixed test
// invocation run inside it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the Cargo manifest file looked up during discovery.
const ManifestName = "Cargo.toml"

// Invocation is the external command testgate runs.
type Invocation struct {
	Command string
	Args    []string
}

// Argv returns the command followed by its arguments.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, 1+len(i.Args))
	argv = append(argv, i.Command)
	return append(argv, i.Args...)
}

// DefaultInvocation runs every workspace member's tests with release
// build settings.
var DefaultInvocation = Invocation{
	Command: "cargo",
	Args:    []string{"test", "--workspace", "--release"},
}

// Config holds the invocation used for a run. It is not user-editable.
type Config struct {
	Invocation Invocation
}

// manifest is the subset of Cargo.toml needed for discovery.
type manifest struct {
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// LoadResult holds the config and the discovered workspace root.
type LoadResult struct {
	Config   *Config
	RepoRoot string   // directory holding the workspace manifest; falls back to dir
	Members  []string // workspace.members as declared, if any
}

// Load discovers the Cargo workspace root by walking upward from dir.
// The first Cargo.toml declaring a [workspace] table wins. Without one,
// the nearest Cargo.toml is used, and without any manifest dir itself is
// the root. Discovery never fails on a malformed manifest: cargo reports
// that itself when it runs.
func Load(dir string) (*LoadResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	res := &LoadResult{
		Config:   &Config{Invocation: DefaultInvocation},
		RepoRoot: dir,
	}

	root, members, err := findWorkspaceRoot(dir)
	if err != nil {
		nearest, err := findManifestDir(dir)
		if err != nil {
			return res, nil
		}
		res.RepoRoot = nearest
		return res, nil
	}
	res.RepoRoot = root
	res.Members = members
	return res, nil
}

// findWorkspaceRoot walks upward from dir looking for a Cargo.toml with
// a [workspace] table.
func findWorkspaceRoot(dir string) (string, []string, error) {
	for {
		path := filepath.Join(dir, ManifestName)
		if data, err := os.ReadFile(path); err == nil {
			var m manifest
			if _, err := toml.Decode(string(data), &m); err == nil && m.Workspace != nil {
				return dir, m.Workspace.Members, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, fmt.Errorf("workspace %s not found", ManifestName)
		}
		dir = parent
	}
}

// findManifestDir walks upward from dir looking for any Cargo.toml.
func findManifestDir(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", ManifestName)
		}
		dir = parent
	}
}
