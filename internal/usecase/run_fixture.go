package usecase

import (
	"context"
	"time"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
	"github.com/yrrapt/yaaade/internal/usecase/check"
)

// RunFixture loads a fixture file, builds it, simulates it and evaluates its
// checks. Load and build failures are returned as errors; a failed
// simulation is recorded in the run result instead.
type RunFixture struct {
	fixtures ports.FixtureLoader
	builder  *BuildFixture
	store    ports.ArtifactStore

	defaultSettings string
	now             func() time.Time
}

type RunOption func(*RunFixture)

// WithArtifactStore persists every run.
func WithArtifactStore(s ports.ArtifactStore) RunOption {
	return func(uc *RunFixture) { uc.store = s }
}

// WithDefaultSettings is used for fixtures that name no settings document.
func WithDefaultSettings(path string) RunOption {
	return func(uc *RunFixture) { uc.defaultSettings = path }
}

func WithClock(now func() time.Time) RunOption {
	return func(uc *RunFixture) { uc.now = now }
}

func NewRunFixture(fl ports.FixtureLoader, b *BuildFixture, opts ...RunOption) *RunFixture {
	uc := &RunFixture{fixtures: fl, builder: b, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RunOutcome is a finished run: the artifact, the raw traces for plotting
// and the artifact id when the run was saved.
type RunOutcome struct {
	Run        domain.RunResult
	Results    domain.Results
	ArtifactID string
}

func (uc *RunFixture) Execute(ctx context.Context, fixturePath string, kind domain.SimulatorKind) (RunOutcome, error) {
	spec, err := uc.fixtures.LoadFixture(fixturePath)
	if err != nil {
		return RunOutcome{}, err
	}
	if spec.Settings == "" {
		spec.Settings = uc.defaultSettings
	}

	built, err := uc.builder.Execute(ctx, spec, kind)
	if err != nil {
		return RunOutcome{}, err
	}
	f := built.Fixture

	run := domain.RunResult{
		FixtureName: spec.Name,
		FixturePath: fixturePath,
		Simulator:   kind,
		Corner:      built.Corner,
		StartedAt:   uc.now(),
		Checks:      []domain.CheckResult{},
	}

	var out RunOutcome
	if simErr := f.RunSimulation(ctx); simErr != nil {
		run.Error = domain.NewRunError(simErr)
	} else {
		out.Results = f.Backend().Results()
		summary := out.Results.Summary()
		run.Summary = &summary
		run.Checks = check.Evaluate(spec.Checks, run.Summary)
	}
	run.NetlistPath = f.NetlistPath()
	run.EndedAt = uc.now()

	if uc.store != nil {
		id, err := uc.store.SaveRun(run)
		if err != nil {
			return RunOutcome{}, err
		}
		out.ArtifactID = id
	}

	out.Run = run
	return out, nil
}
