package tui

import (
	"context"
	"log/slog"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
	"github.com/yrrapt/yaaade/internal/usecase"
)

// FixtureRunner is satisfied by *usecase.RunFixture.
type FixtureRunner interface {
	Execute(ctx context.Context, fixturePath string, kind domain.SimulatorKind) (usecase.RunOutcome, error)
}

// Workspace is the fixture pipeline wired for one workspace root.
type Workspace struct {
	Root      string
	Simulator domain.SimulatorKind
	Fixtures  ports.FixtureLoader
	Runner    FixtureRunner
}

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer
	// Open wires a Workspace once a root is known.
	Open func(root string) (Workspace, error)

	Logger *slog.Logger
	Debug  bool
}
