// Package fixture assembles a SPICE testbench from its parts and drives one
// simulation run through the selected backend.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// Fixture is a testbench: includes, power domains, components (with the
// DUT), one simulation directive and the backend that runs it.
type Fixture struct {
	backend  ports.SimulatorBackend
	settings ports.SettingsLoader
	log      *slog.Logger

	includes   []domain.IncludeLibrary
	domains    powerDomains
	components componentStore
	simulation *domain.Simulation
	pvt        *domain.PVT
}

type Option func(*Fixture)

// WithSettingsLoader enables SetPVT and SetInclude.
func WithSettingsLoader(l ports.SettingsLoader) Option {
	return func(f *Fixture) { f.settings = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fixture) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates an empty fixture bound to backend for its whole lifetime.
func New(backend ports.SimulatorBackend, opts ...Option) *Fixture {
	f := &Fixture{
		backend:    backend,
		log:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
		domains:    newPowerDomains(),
		components: newComponentStore(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromCell creates a fixture whose DUT is the given schematic cell, netlisted
// by the schematic tool and registered under name.
func FromCell(ctx context.Context, backend ports.SimulatorBackend, netlister ports.SchematicNetlister, library, cell, name string, opts ...Option) (*Fixture, error) {
	text, err := netlister.GenerateCell(ctx, library, cell)
	if err != nil {
		return nil, err
	}

	f := New(backend, opts...)
	f.AddComponent(domain.NewDUT(name, domain.TrimNetlistTrailer(text)))
	return f, nil
}

func (f *Fixture) Backend() ports.SimulatorBackend { return f.backend }

// AddComponent registers c under (type, name). An existing component with the
// same type and name is replaced silently; callers own name uniqueness.
func (f *Fixture) AddComponent(c domain.Component) {
	if f.components.put(c) {
		f.log.Debug("fixture.component.replaced", "type", c.Type(), "name", c.Name())
	}
}

// Component returns the component registered under (t, name).
func (f *Fixture) Component(t domain.ComponentType, name string) (domain.Component, bool) {
	return f.components.get(t, name)
}

// Components returns the components of one type in registration order.
func (f *Fixture) Components(t domain.ComponentType) []domain.Component {
	cs, _ := f.components.group(t)
	return cs
}

// AddPowerDomain registers d by name; the last write wins.
func (f *Fixture) AddPowerDomain(d *domain.PowerDomain) {
	f.domains.put(d)
}

func (f *Fixture) GetPowerDomain(name string) (*domain.PowerDomain, error) {
	d, ok := f.domains.get(name)
	if !ok {
		return nil, &domain.OpError{
			Op:   "fixture.power_domain",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("power domain %q: %w", name, domain.ErrNotFound),
		}
	}
	return d, nil
}

// SetSimulation replaces the active simulation directive.
func (f *Fixture) SetSimulation(sim *domain.Simulation) {
	f.simulation = sim
}

func (f *Fixture) Simulation() *domain.Simulation { return f.simulation }

// AddInclude appends a library include; includes render in call order.
func (f *Fixture) AddInclude(lib domain.IncludeLibrary) {
	f.includes = append(f.includes, lib)
}

func (f *Fixture) Includes() []domain.IncludeLibrary {
	return append([]domain.IncludeLibrary(nil), f.includes...)
}

// SetPVT loads the settings document at path and keeps its pvt section.
func (f *Fixture) SetPVT(path string) error {
	s, err := f.loadSettings("fixture.set_pvt", path)
	if err != nil {
		return err
	}
	pvt := s.PVT
	f.pvt = &pvt
	return nil
}

// PVT returns the settings loaded by SetPVT.
func (f *Fixture) PVT() (domain.PVT, bool) {
	if f.pvt == nil {
		return domain.PVT{}, false
	}
	return *f.pvt, true
}

// SetInclude loads the settings document at path and adds every library of
// its include section, rendered against corner. An empty corner falls back
// to the nominal corner of a previous SetPVT, if any. A document without
// include entries adds nothing.
func (f *Fixture) SetInclude(path, corner string) error {
	s, err := f.loadSettings("fixture.set_include", path)
	if err != nil {
		return err
	}
	if len(s.Include) == 0 {
		f.log.Debug("fixture.set_include.empty", "path", s.Path)
		return nil
	}

	if corner == "" && f.pvt != nil {
		corner = f.pvt.Corner.Nominal
	}
	for _, lib := range s.Include {
		f.AddInclude(domain.IncludeLibrary{Path: lib, Corner: corner})
	}
	return nil
}

func (f *Fixture) loadSettings(op, path string) (domain.GlobalSettings, error) {
	if f.settings == nil {
		return domain.GlobalSettings{}, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.New("no settings loader configured"),
		}
	}
	return f.settings.LoadSettings(path)
}

// RunSimulation writes the netlist, runs the backend and reads its results.
// The first failure stops the sequence; results stay on the backend.
func (f *Fixture) RunSimulation(ctx context.Context) error {
	if _, err := f.WriteNetlist(); err != nil {
		return err
	}

	f.log.Info("fixture.simulation.start", "simulator", f.backend.Kind())
	if err := f.backend.RunSimulation(ctx); err != nil {
		return err
	}
	if err := f.backend.ReadResults(); err != nil {
		return err
	}
	f.log.Info("fixture.simulation.done", "simulator", f.backend.Kind(), "points", f.backend.Results().Points())
	return nil
}
