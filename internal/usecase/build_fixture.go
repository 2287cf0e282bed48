package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yrrapt/yaaade/internal/app/template"
	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/fixture"
	"github.com/yrrapt/yaaade/internal/ports"
)

// BuildFixture turns a declarative FixtureSpec into a ready-to-run Fixture.
type BuildFixture struct {
	simulators ports.SimulatorFactory
	netlister  ports.SchematicNetlister
	settings   ports.SettingsLoader

	lookup   func(string) (string, bool)
	readFile func(string) ([]byte, error)
	log      *slog.Logger
}

type BuildOption func(*BuildFixture)

// WithLookup sets how $VAR tokens in include and netlist paths resolve.
func WithLookup(fn func(string) (string, bool)) BuildOption {
	return func(b *BuildFixture) { b.lookup = fn }
}

func WithFileReader(fn func(string) ([]byte, error)) BuildOption {
	return func(b *BuildFixture) { b.readFile = fn }
}

func WithBuildLogger(l *slog.Logger) BuildOption {
	return func(b *BuildFixture) {
		if l != nil {
			b.log = l
		}
	}
}

func NewBuildFixture(sf ports.SimulatorFactory, sn ports.SchematicNetlister, sl ports.SettingsLoader, opts ...BuildOption) *BuildFixture {
	b := &BuildFixture{
		simulators: sf,
		netlister:  sn,
		settings:   sl,
		lookup:     os.LookupEnv,
		readFile:   os.ReadFile,
		log:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Built is a fixture plus the facts the caller reports about it.
type Built struct {
	Fixture *fixture.Fixture
	Corner  string
}

// Execute builds spec for the simulator kind. Params render into pins,
// nodes, raw text, include paths and the DUT netlist.
func (uc *BuildFixture) Execute(ctx context.Context, spec domain.FixtureSpec, kind domain.SimulatorKind) (Built, error) {
	backend, err := uc.simulators.NewBackend(kind)
	if err != nil {
		return Built{}, err
	}

	f := fixture.New(backend, fixture.WithSettingsLoader(uc.settings), fixture.WithLogger(uc.log))

	dut, err := uc.dut(ctx, spec)
	if err != nil {
		return Built{}, err
	}
	f.AddComponent(dut)

	corner := spec.Corner
	if spec.Settings != "" {
		settings := spec.Settings
		if !strings.HasPrefix(settings, "$") && !filepath.IsAbs(settings) && spec.Path != "" {
			settings = filepath.Join(filepath.Dir(spec.Path), settings)
		}
		if corner, err = uc.applySettings(f, settings, corner); err != nil {
			return Built{}, err
		}
	}

	for _, inc := range spec.Includes {
		p, err := uc.expand(inc.Path, spec)
		if err != nil {
			return Built{}, err
		}
		f.AddInclude(domain.IncludeLibrary{Path: p, Corner: inc.Corner})
	}

	for _, pd := range spec.PowerDomains {
		nets, err := template.RenderStrings(pd.Nets, spec.Params)
		if err != nil {
			return Built{}, withPath(err, spec.Path)
		}
		d := domain.NewPowerDomain(pd.Name, pd.Voltage, nets...)
		d.Ground = pd.Ground
		f.AddPowerDomain(d)
	}

	for _, cs := range spec.Components {
		c, err := renderComponent(cs, spec.Params)
		if err != nil {
			return Built{}, withPath(err, spec.Path)
		}
		f.AddComponent(c)
	}

	if spec.Simulation != nil {
		if err := spec.Simulation.Validate(); err != nil {
			return Built{}, withPath(err, spec.Path)
		}
		sim := *spec.Simulation
		f.SetSimulation(&sim)
	}

	uc.log.Info("fixture.built", "fixture", spec.Name, "simulator", kind, "corner", corner)
	return Built{Fixture: f, Corner: corner}, nil
}

func (uc *BuildFixture) dut(ctx context.Context, spec domain.FixtureSpec) (*domain.DUT, error) {
	var text string
	switch {
	case spec.DUT.Cell != "":
		if uc.netlister == nil {
			return nil, &domain.OpError{Op: "usecase.build_fixture", Kind: domain.KindInvalidConfig, Path: spec.Path,
				Err: fmt.Errorf("%w: no schematic netlister configured for cell %q", domain.ErrInvalidConfig, spec.DUT.Cell)}
		}
		t, err := uc.netlister.GenerateCell(ctx, spec.DUT.Library, spec.DUT.Cell)
		if err != nil {
			return nil, err
		}
		text = t
	case spec.DUT.NetlistPath != "":
		p, err := uc.expand(spec.DUT.NetlistPath, spec)
		if err != nil {
			return nil, err
		}
		b, err := uc.readFile(p)
		if err != nil {
			return nil, &domain.OpError{Op: "usecase.build_fixture", Kind: domain.KindNotFound, Path: p, Err: err}
		}
		text = string(b)
	default:
		return nil, &domain.OpError{Op: "usecase.build_fixture", Kind: domain.KindInvalidConfig, Path: spec.Path,
			Err: fmt.Errorf("%w: dut needs a cell or a netlist", domain.ErrInvalidConfig)}
	}

	text, err := template.RenderString(domain.TrimNetlistTrailer(text), spec.Params)
	if err != nil {
		return nil, withPath(err, spec.Path)
	}
	pins, err := template.RenderStrings(spec.DUT.Pins, spec.Params)
	if err != nil {
		return nil, withPath(err, spec.Path)
	}

	d := domain.NewDUT(spec.DUT.Name, text, pins...)
	if d.Cell() == "" {
		return nil, &domain.OpError{Op: "usecase.build_fixture", Kind: domain.KindInvalidConfig, Path: spec.Path,
			Err: fmt.Errorf("%w: dut netlist has no .subckt definition", domain.ErrInvalidConfig)}
	}
	return d, nil
}

// applySettings loads PVT and the library includes. The corner passed in
// wins over the nominal one; the corner actually used is returned.
func (uc *BuildFixture) applySettings(f *fixture.Fixture, path, corner string) (string, error) {
	if err := f.SetPVT(path); err != nil {
		return "", err
	}
	if corner == "" {
		if pvt, ok := f.PVT(); ok {
			corner = pvt.Corner.Nominal
		}
	}
	if err := f.SetInclude(path, corner); err != nil {
		return "", err
	}
	return corner, nil
}

// expand renders params, resolves a leading $VAR and makes relative paths
// relative to the fixture file.
func (uc *BuildFixture) expand(p string, spec domain.FixtureSpec) (string, error) {
	p, err := template.RenderString(p, spec.Params)
	if err != nil {
		return "", withPath(err, spec.Path)
	}
	p, err = domain.ExpandPathVar(p, uc.lookup)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) && spec.Path != "" {
		p = filepath.Join(filepath.Dir(spec.Path), p)
	}
	return p, nil
}

func renderComponent(cs domain.ComponentSpec, params domain.Vars) (domain.Component, error) {
	nodes, err := template.RenderStrings(cs.Nodes, params)
	if err != nil {
		return nil, err
	}
	cs.Nodes = nodes
	if strings.Contains(cs.Text, "{{") {
		if cs.Text, err = template.RenderString(cs.Text, params); err != nil {
			return nil, err
		}
	}
	return cs.Component()
}

func withPath(err error, path string) error {
	var oe *domain.OpError
	if path == "" || !errors.As(err, &oe) || oe.Path != "" {
		return err
	}
	cp := *oe
	cp.Path = path
	return &cp
}
