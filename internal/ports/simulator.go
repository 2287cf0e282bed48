package ports

import (
	"context"

	"github.com/yrrapt/yaaade/internal/domain"
)

// SimulatorBackend runs one simulator. It is chosen once per fixture and
// also supplies the netlist dialect that simulator reads.
type SimulatorBackend interface {
	domain.Dialect

	Kind() domain.SimulatorKind
	// RunDir and TempNetlist locate the netlist the fixture writes.
	RunDir() string
	TempNetlist() string

	RunSimulation(ctx context.Context) error
	ReadResults() error
	// Results returns what the last ReadResults parsed.
	Results() domain.Results
}

// SimulatorFactory builds the backend for a simulator kind.
type SimulatorFactory interface {
	NewBackend(kind domain.SimulatorKind) (SimulatorBackend, error)
}
