// Package simulator holds the SPICE simulator backends. Each backend
// registers a factory under its domain.SimulatorKind; New picks one.
package simulator

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/infra/procexec"
	"github.com/yrrapt/yaaade/internal/ports"
)

const (
	defaultRunDir  = "_rundir"
	tempNetlist    = "netlist.spice"
	// DefaultRawFile is the ASCII raw output inside the run directory.
	DefaultRawFile = "netlist.raw"
)

// Config is shared by every backend factory.
type Config struct {
	RunDir string // defaults to "_rundir"
	Binary string // defaults to the backend's executable name
	Runner procexec.Runner
	Logger *slog.Logger
}

func (c Config) withDefaults(binary string) Config {
	if c.RunDir == "" {
		c.RunDir = defaultRunDir
	}
	if c.Binary == "" {
		c.Binary = binary
	}
	if c.Runner == nil {
		c.Runner = procexec.OSRunner{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return c
}

// Factory builds a backend from a Config.
type Factory func(cfg Config) ports.SimulatorBackend

var (
	mu        sync.RWMutex
	factories = map[domain.SimulatorKind]Factory{}
)

// Register makes a backend available to New. Registering a kind twice
// replaces the earlier factory.
func Register(kind domain.SimulatorKind, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New builds the backend registered under kind.
func New(kind domain.SimulatorKind, cfg Config) (ports.SimulatorBackend, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, &domain.OpError{
			Op:   "simulator.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: no backend registered for %q", domain.ErrInvalidConfig, kind),
		}
	}
	return f(cfg), nil
}

// Kinds lists the registered backends, sorted by name.
func Kinds() []domain.SimulatorKind {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]domain.SimulatorKind, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Registry adapts the package registry to ports.SimulatorFactory, building
// every backend from the same Config.
type Registry struct {
	Config Config
}

var _ ports.SimulatorFactory = Registry{}

func (r Registry) NewBackend(kind domain.SimulatorKind) (ports.SimulatorBackend, error) {
	return New(kind, r.Config)
}
