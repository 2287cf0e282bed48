// Package workspacefinder locates a yaaade workspace and loads its config.
package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

const ConfigFile = "yaaade.yaml"

// Finder searches for yaaade.yaml from a directory upward.
type Finder struct {
	ConfigFile string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	const op = "workspacefinder.findroot"
	if startDir == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: errors.New("start directory is empty")}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
	}

	// a fixture file path starts the search from its directory
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	for cur := filepath.Clean(abs); ; {
		if _, err := os.Stat(filepath.Join(cur, f.ConfigFile)); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   op,
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  fmt.Errorf("%w: no %s in %s or any parent", domain.ErrNotFound, f.ConfigFile, abs),
			}
		}
		cur = parent
	}
}

// Resolve honours an explicit workspace (the --workspace flag) and falls
// back to searching upward from cwd.
func (f *Finder) Resolve(explicit, cwd string) (string, error) {
	if explicit == "" {
		return f.FindRoot(cwd)
	}
	abs, err := filepath.Abs(explicit)
	if err != nil {
		return "", &domain.OpError{Op: "workspacefinder.resolve", Kind: domain.KindExecution, Path: explicit, Err: err}
	}
	if _, err := os.Stat(filepath.Join(abs, f.ConfigFile)); err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.resolve",
			Kind: domain.KindNotFound,
			Path: abs,
			Err:  fmt.Errorf("%w: %s is not a workspace (run yaaade init)", domain.ErrNotFound, abs),
		}
	}
	return abs, nil
}
