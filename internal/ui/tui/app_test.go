package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/usecase"
)

type fakeFixtures struct {
	refs []domain.FixtureRef
}

func (f fakeFixtures) LoadFixture(string) (domain.FixtureSpec, error) { return domain.FixtureSpec{}, nil }
func (f fakeFixtures) ListFixtures(string) ([]domain.FixtureRef, error) {
	return f.refs, nil
}

type fakeRunner struct {
	outcome usecase.RunOutcome
	err     error
	block   bool
	gotPath string
}

func (r *fakeRunner) Execute(ctx context.Context, path string, _ domain.SimulatorKind) (usecase.RunOutcome, error) {
	r.gotPath = path
	if r.block {
		<-ctx.Done()
		return usecase.RunOutcome{}, ctx.Err()
	}
	return r.outcome, r.err
}

func testWorkspace(r *fakeRunner) Workspace {
	return Workspace{
		Root:      "/ws",
		Simulator: domain.SimulatorNgspice,
		Fixtures: fakeFixtures{refs: []domain.FixtureRef{
			{Name: "inverter_tran", Path: "/ws/fixtures/inverter.yaml"},
			{Name: "rc_lowpass_ac", Path: "/ws/fixtures/example.yaml"},
		}},
		Runner: r,
	}
}

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}
	return mm, cmd
}

func loaded(t *testing.T, r *fakeRunner) model {
	t.Helper()
	m := newModel(Deps{})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = step(t, m, workspaceRefreshedMsg{cwd: "/ws", found: true, root: "/ws"})
	ws := testWorkspace(r)
	refs, _ := ws.Fixtures.ListFixtures(ws.Root)
	m, _ = step(t, m, fixturesLoadedMsg{ws: ws, refs: refs})
	return m
}

func TestModel_NoWorkspaceBanner(t *testing.T) {
	m := newModel(Deps{})
	m, cmd := step(t, m, workspaceRefreshedMsg{cwd: "/tmp/x", found: false})

	if cmd != nil {
		t.Error("expected no follow-up command without a workspace")
	}
	if m.scr != screenWorkspace {
		t.Fatalf("expected workspace screen, got %v", m.scr)
	}
	if !strings.Contains(m.View(), "No workspace found") {
		t.Errorf("expected banner in view, got:\n%s", m.View())
	}
}

func TestModel_FixturesLoaded(t *testing.T) {
	m := loaded(t, &fakeRunner{})

	if m.scr != screenFixtures {
		t.Fatalf("expected fixtures screen, got %v", m.scr)
	}
	if got := len(m.fixtures.Items()); got != 2 {
		t.Fatalf("expected 2 fixtures, got %d", got)
	}
	if !strings.Contains(m.View(), "simulator: ngspice") {
		t.Errorf("expected simulator in banner, got:\n%s", m.View())
	}
}

func TestModel_FixturesLoadError_SetsToast(t *testing.T) {
	m := newModel(Deps{})
	err := &domain.OpError{Op: "workspacefinder.loadconfig", Kind: domain.KindInvalidConfig, Path: "/ws/yaaade.yaml", Err: errors.New("yaml: line 3: did not find expected key")}
	m, _ = step(t, m, fixturesLoadedMsg{err: err})

	if m.toast != "Invalid YAML at yaaade.yaml line 3" {
		t.Errorf("unexpected toast %q", m.toast)
	}
}

func TestModel_EnterStartsRun(t *testing.T) {
	r := &fakeRunner{block: true}
	m := loaded(t, r)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command to wait for the run")
	}
	if m.scr != screenRunning || !m.running {
		t.Fatalf("expected running screen, got scr=%v running=%v", m.scr, m.running)
	}
	if m.active != "inverter_tran" {
		t.Errorf("expected active fixture inverter_tran, got %q", m.active)
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if !strings.Contains(m.toast, "Cancelling") {
		t.Errorf("expected cancel toast, got %q", m.toast)
	}
}

func TestModel_RunDoneShowsResult(t *testing.T) {
	m := loaded(t, &fakeRunner{})
	m.running = true
	m.scr = screenRunning

	run := domain.RunResult{FixtureName: "inverter_tran", Simulator: domain.SimulatorNgspice, Checks: []domain.CheckResult{}}
	m, _ = step(t, m, runnerDoneMsg{outcome: usecase.RunOutcome{Run: run, ArtifactID: "id-1"}})

	if m.scr != screenResult || m.running {
		t.Fatalf("expected result screen, got scr=%v running=%v", m.scr, m.running)
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scr != screenFixtures {
		t.Errorf("expected esc to go back to fixtures, got %v", m.scr)
	}
}

func TestModel_RunError_BackToFixtures(t *testing.T) {
	m := loaded(t, &fakeRunner{})
	m.scr = screenRunning
	m.running = true

	err := &domain.OpError{Op: "simulator.run", Kind: domain.KindExecution, Err: errors.New("exit status 1")}
	m, _ = step(t, m, runnerDoneMsg{err: err})

	if m.scr != screenFixtures {
		t.Fatalf("expected fixtures screen, got %v", m.scr)
	}
	if m.toast != "Simulation failed (see logs)" {
		t.Errorf("unexpected toast %q", m.toast)
	}
}

func TestStartRunAsync_DeliversOutcome(t *testing.T) {
	r := &fakeRunner{outcome: usecase.RunOutcome{ArtifactID: "abc"}}
	ws := testWorkspace(r)

	_, wait := startRunAsync(context.Background(), ws, "/ws/fixtures/inverter.yaml", nil, true)
	msg, ok := wait().(runnerDoneMsg)
	if !ok {
		t.Fatalf("expected runnerDoneMsg, got %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if msg.outcome.ArtifactID != "abc" {
		t.Errorf("expected artifact id abc, got %q", msg.outcome.ArtifactID)
	}
	if r.gotPath != "/ws/fixtures/inverter.yaml" {
		t.Errorf("runner got path %q", r.gotPath)
	}
}

func TestRenderRunDetails(t *testing.T) {
	run := domain.RunResult{
		FixtureName: "inverter_tran",
		Simulator:   domain.SimulatorXyce,
		Corner:      "ff",
		Summary: &domain.Summary{
			Analysis: "Transient Analysis",
			Points:   3,
			Final:    map[string]float64{"v(out)": 1.8},
			Min:      map[string]float64{"v(out)": 0},
			Max:      map[string]float64{"v(out)": 1.8},
		},
		Checks: []domain.CheckResult{{Name: "$.points gt", Passed: false, Message: "3 is not > 5"}},
	}
	out := renderRunDetails(DefaultTheme(), run, "id-9")

	for _, want := range []string{"inverter_tran", "FAIL", "xyce", "ff", "id-9", "v(out) final=1.8", "3 is not > 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in details, got:\n%s", want, out)
		}
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("abcdef", 3); got != "abc…" {
		t.Errorf("clampString = %q", got)
	}
	if got := clampString("ab", 3); got != "ab" {
		t.Errorf("clampString = %q", got)
	}
	if got := clampString("ab", 0); got != "" {
		t.Errorf("clampString = %q", got)
	}
}
