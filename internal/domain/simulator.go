package domain

import (
	"fmt"
	"strings"
)

// SimulatorKind identifies a simulator backend.
type SimulatorKind string

const (
	SimulatorNgspice SimulatorKind = "ngspice"
	SimulatorXyce    SimulatorKind = "xyce"
	SimulatorSpectre SimulatorKind = "spectre"
)

// ParseSimulatorKind accepts a backend name case-insensitively.
func ParseSimulatorKind(s string) (SimulatorKind, error) {
	k := SimulatorKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case SimulatorNgspice, SimulatorXyce, SimulatorSpectre:
		return k, nil
	default:
		return "", &OpError{
			Op:   "simulator.parse",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("%w: unknown simulator %q (expected ngspice|xyce|spectre)", ErrInvalidConfig, s),
		}
	}
}
