package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yrrapt/yaaade/internal/domain"
)

type screen int

const (
	screenWorkspace screen = iota
	screenFixtures
	screenRunning
	screenResult
)

type fixtureItem struct {
	ref  domain.FixtureRef
	root string
}

func (f fixtureItem) Title() string { return f.ref.Name }
func (f fixtureItem) Description() string {
	if rel, err := filepath.Rel(f.root, f.ref.Path); err == nil {
		return rel
	}
	return f.ref.Path
}
func (f fixtureItem) FilterValue() string { return f.ref.Name }

type model struct {
	theme Theme
	deps  Deps

	scr      screen
	fixtures list.Model
	spinner  spinner.Model
	result   viewport.Model

	cwd            string
	workspaceFound bool
	workspaceRoot  string
	ws             *Workspace

	running bool
	active  string
	cancel  context.CancelFunc
	toast   string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Fixtures"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	cwd, _ := os.Getwd()

	return model{
		theme:    DefaultTheme(),
		deps:     deps,
		scr:      screenWorkspace,
		fixtures: l,
		spinner:  sp,
		result:   viewport.New(0, 0),
		cwd:      cwd,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.fixtures.SetSize(w-4, h-10)
		m.result.Width = w - 6
		m.result.Height = h - 10
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if !msg.found {
			m.scr = screenWorkspace
			m.ws = nil
			return m, nil
		}
		return m, cmdLoadFixtures(m.deps, msg.root)

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace initialized in " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case fixturesLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		ws := msg.ws
		m.ws = &ws
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, fixtureItem{ref: r, root: ws.Root})
		}
		m.scr = screenFixtures
		return m, m.fixtures.SetItems(items)

	case runnerDoneMsg:
		m.running = false
		m.cancel = nil
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.scr = screenFixtures
			return m, nil
		}
		m.toast = ""
		m.result.SetContent(renderRunDetails(m.theme, msg.outcome.Run, msg.outcome.ArtifactID))
		m.result.GotoTop()
		m.scr = screenResult
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		if m.scr == screenFixtures && m.fixtures.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q":
			switch m.scr {
			case screenRunning:
				return m, nil
			case screenResult:
				m.scr = screenFixtures
				return m, nil
			}
			return m, tea.Quit

		case "esc", "b":
			if m.scr == screenResult {
				m.scr = screenFixtures
				return m, nil
			}

		case "x":
			if m.scr == screenRunning && m.cancel != nil {
				m.cancel()
				m.toast = "Cancelling " + m.active + "…"
				return m, nil
			}

		case "r":
			if m.scr != screenRunning {
				m.toast = ""
				return m, cmdRefreshWorkspace(m.deps)
			}

		case "i":
			if m.scr == screenWorkspace && !m.workspaceFound {
				return m, cmdInitWorkspaceHere(m.deps, m.cwd)
			}

		case "enter":
			if m.scr == screenFixtures && m.ws != nil {
				it, ok := m.fixtures.SelectedItem().(fixtureItem)
				if !ok {
					return m, nil
				}
				ctx, cancel := context.WithCancel(context.Background())
				_, wait := startRunAsync(ctx, *m.ws, it.ref.Path, m.deps.Logger, m.deps.Debug)
				m.cancel = cancel
				m.running = true
				m.active = it.ref.Name
				m.toast = ""
				m.scr = screenRunning
				return m, tea.Batch(wait, m.spinner.Tick)
			}
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenFixtures:
		m.fixtures, cmd = m.fixtures.Update(msg)
	case screenResult:
		m.result, cmd = m.result.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("yaaade") + "\n" +
		m.theme.Subtitle.Render("SPICE fixtures: xschem + ngspice / Xyce / Spectre") + "\n"

	var banner string
	if m.workspaceFound {
		sim := ""
		if m.ws != nil {
			sim = "  •  simulator: " + string(m.ws.Simulator)
		}
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s%s", m.workspaceRoot, sim))
	} else {
		banner = m.theme.Card.Render("⚠ No workspace found.\n\nPress i to initialize one in " + m.cwd)
	}

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Toast.Render(m.toast)
	}

	var body, help string
	switch m.scr {
	case screenWorkspace:
		help = "i init • r refresh • q quit"
	case screenFixtures:
		body = m.theme.Card.Render(m.fixtures.View())
		help = "↑/↓ navigate • enter run • / search • r refresh • q quit"
	case screenRunning:
		body = m.theme.Card.Render(m.spinner.View() + " Running " + m.active + "…")
		help = "x cancel • ctrl+c quit"
	case screenResult:
		body = m.theme.Card.Render(m.result.View())
		help = "↑/↓ scroll • esc/b back • q fixtures"
	default:
		return wrap.Render(header + "\n" + "unknown state")
	}

	out := header + "\n" + banner + toast + "\n\n"
	if body != "" {
		out += body + "\n"
	}
	return wrap.Render(out + m.theme.Help.Render(help))
}
