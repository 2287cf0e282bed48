package usecase

import (
	"path/filepath"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// InitWorkspace scaffolds yaaade.yaml, an example fixture and the global
// settings document.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute returns the absolute root it initialized.
func (uc *InitWorkspace) Execute(root string, force bool) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindExecution, Path: root, Err: err}
	}
	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
		return "", err
	}
	return abs, nil
}
