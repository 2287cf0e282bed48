package usecase

import (
	"context"
	"errors"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

type fakeBackend struct {
	domain.SpiceDialect

	kind    domain.SimulatorKind
	runDir  string
	runErr  error
	results domain.Results
	ran     bool
}

func (b *fakeBackend) Kind() domain.SimulatorKind { return b.kind }
func (b *fakeBackend) RunDir() string              { return b.runDir }
func (b *fakeBackend) TempNetlist() string         { return "netlist.spice" }
func (b *fakeBackend) Results() domain.Results     { return b.results }
func (b *fakeBackend) ReadResults() error          { return nil }

func (b *fakeBackend) RunSimulation(context.Context) error {
	b.ran = true
	return b.runErr
}

type fakeFactory struct {
	backend *fakeBackend
	kinds   []domain.SimulatorKind
}

func (f *fakeFactory) NewBackend(kind domain.SimulatorKind) (ports.SimulatorBackend, error) {
	f.kinds = append(f.kinds, kind)
	if kind == "hspice" {
		return nil, &domain.OpError{Op: "simulator.new", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}
	}
	f.backend.kind = kind
	return f.backend, nil
}

type fakeNetlister struct {
	text  string
	err   error
	calls []string
}

func (n *fakeNetlister) GenerateCell(_ context.Context, library, cell string) (string, error) {
	n.calls = append(n.calls, library+"/"+cell)
	return n.text, n.err
}

type fakeSettings struct {
	docs map[string]domain.GlobalSettings
}

func (s fakeSettings) LoadSettings(path string) (domain.GlobalSettings, error) {
	d, ok := s.docs[path]
	if !ok {
		return domain.GlobalSettings{}, &domain.OpError{Op: "settings", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return d, nil
}

type fakeFixtureLoader struct {
	spec domain.FixtureSpec
	err  error
}

func (f fakeFixtureLoader) LoadFixture(path string) (domain.FixtureSpec, error) {
	if f.err != nil {
		return domain.FixtureSpec{}, f.err
	}
	s := f.spec
	s.Path = path
	return s, nil
}

func (f fakeFixtureLoader) ListFixtures(string) ([]domain.FixtureRef, error) {
	return []domain.FixtureRef{{Name: f.spec.Name, Path: "fixtures/" + f.spec.Name + ".yaml"}}, nil
}

type fakeStore struct {
	saved []domain.RunArtifact
	err   error
}

func (s *fakeStore) SaveRun(run domain.RunArtifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, run)
	return "run-1", nil
}

type fakeInitializer struct {
	got   domain.WorkspaceSpec
	force bool
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.got, f.force = spec, force
	if spec.Root == "" {
		return errors.New("no root")
	}
	return nil
}

const inverterSubckt = `** sch_path: /proj/digital/inverter/schematic/inverter.sch
.subckt inverter vdd in out vss
XM1 out in vss vss nfet W={{w}}
XM2 out in vdd vdd pfet W={{w}}
.ends
** flattened .save nodes
.save v(out)
`

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }

func inverterSpec() domain.FixtureSpec {
	return domain.FixtureSpec{
		Name: "inverter_tran",
		DUT: domain.DUTSpec{
			Name:    "inv",
			Library: "digital",
			Cell:    "inverter",
			Pins:    []string{"{{supply}}", "in", "out", "gnd"},
		},
		Settings: "$PROJECT_ROOT/config/global.yaml",
		Params:   domain.Vars{"supply": "vdd", "w": "2u"},
		PowerDomains: []domain.PowerDomainSpec{
			{Name: "vdd", Voltage: 1.8},
		},
		Components: []domain.ComponentSpec{
			{Type: domain.TypeCapacitor, Name: "load", Nodes: []string{"out", "gnd"}, Value: 10e-15},
			{Type: domain.TypeVoltageSource, Name: "in", Nodes: []string{"in", "gnd"}, Waveform: domain.Waveform{
				Pulse: &domain.Pulse{V2: 1.8, Rise: 1e-10, Fall: 1e-10, Width: 5e-9, Period: 1e-8},
			}},
		},
		Simulation: domain.Transient(1e-11, 2e-8),
		Checks: []domain.CheckSpec{
			{Expr: `$.max["v(out)"]`, Gt: fPtr(1.7)},
			{Expr: `$.analysis`, Contains: strPtr("Transient")},
		},
	}
}

func globalSettings() fakeSettings {
	return fakeSettings{docs: map[string]domain.GlobalSettings{
		"$PROJECT_ROOT/config/global.yaml": {
			Path:    "/proj/config/global.yaml",
			Include: []string{"/pdk/models.lib"},
			PVT:     domain.PVT{Corner: domain.Corners{Nominal: "tt", All: []string{"tt", "ff"}}},
		},
	}}
}

func transientResults() domain.Results {
	return domain.Results{
		Plotname: "Transient Analysis",
		Scale:    domain.Trace{Name: "time", Values: []float64{0, 1e-9, 2e-9}},
		Traces: []domain.Trace{
			{Name: "v(out)", Unit: "voltage", Values: []float64{1.79, 0.9, 0.01}},
		},
	}
}
