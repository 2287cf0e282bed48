package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yrrapt/yaaade/internal/domain"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadFixtures(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.Open == nil {
			return fixturesLoadedMsg{err: errors.New("workspace opener is nil")}
		}
		ws, err := deps.Open(root)
		if err != nil {
			return fixturesLoadedMsg{err: err}
		}

		refs, err := ws.Fixtures.ListFixtures(ws.Root)
		return fixturesLoadedMsg{ws: ws, refs: refs, err: err}
	}
}

func listenRunner(ch <-chan runnerDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return runnerDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

// startRunAsync runs the fixture off the UI goroutine; cancelling ctx stops
// the simulator subprocess.
func startRunAsync(ctx context.Context, ws Workspace, fixturePath string, log *slog.Logger, debug bool) (chan runnerDoneMsg, tea.Cmd) {
	ch := make(chan runnerDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("run.start",
			"workspace", ws.Root,
			"fixture_path", fixturePath,
			"simulator", ws.Simulator,
			"debug", debug,
		)

		outcome, err := ws.Runner.Execute(ctx, fixturePath, ws.Simulator)
		switch {
		case err != nil:
			log.Error("run.failed", "err", err)
		case outcome.Run.Error != nil:
			log.Warn("run.simulation_failed",
				"kind", string(outcome.Run.Error.Kind),
				"message", outcome.Run.Error.Message,
				"saved_id", outcome.ArtifactID,
			)
		default:
			log.Info("run.ok", "saved_id", outcome.ArtifactID, "failed_checks", outcome.Run.FailedChecks())
		}

		if debug {
			for _, c := range outcome.Run.Checks {
				log.Debug("check", "name", c.Name, "passed", c.Passed, "message", c.Message)
			}
		}

		ch <- runnerDoneMsg{outcome: outcome, err: err}
	}()

	return ch, listenRunner(ch)
}
