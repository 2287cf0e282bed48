package tui

import (
	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/usecase"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type fixturesLoadedMsg struct {
	ws   Workspace
	refs []domain.FixtureRef
	err  error
}

type runnerDoneMsg struct {
	outcome usecase.RunOutcome
	err     error
}
