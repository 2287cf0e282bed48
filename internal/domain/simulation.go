package domain

import (
	"errors"
	"fmt"
	"strings"
)

// AnalysisKind names a SPICE analysis.
type AnalysisKind string

const (
	AnalysisTran AnalysisKind = "tran"
	AnalysisAC   AnalysisKind = "ac"
	AnalysisDC   AnalysisKind = "dc"
	AnalysisOP   AnalysisKind = "op"
)

// Simulation is the single analysis directive of a fixture.
// Only the fields of its Kind are meaningful.
type Simulation struct {
	Kind AnalysisKind

	// tran
	Step  float64
	Stop  float64
	Start float64

	// ac
	Sweep  string // dec, oct or lin
	Points int
	FStart float64
	FStop  float64

	// dc
	Source string
	From   float64
	To     float64
	Incr   float64
}

func Transient(step, stop float64) *Simulation {
	return &Simulation{Kind: AnalysisTran, Step: step, Stop: stop}
}

func ACSweep(sweep string, points int, fstart, fstop float64) *Simulation {
	return &Simulation{Kind: AnalysisAC, Sweep: sweep, Points: points, FStart: fstart, FStop: fstop}
}

func DCSweep(source string, from, to, incr float64) *Simulation {
	return &Simulation{Kind: AnalysisDC, Source: source, From: from, To: to, Incr: incr}
}

func OperatingPoint() *Simulation {
	return &Simulation{Kind: AnalysisOP}
}

// Netlist renders the directive in the given dialect.
func (s *Simulation) Netlist(d Dialect) string {
	return d.Analysis(*s)
}

// Validate reports the first inconsistent parameter.
func (s Simulation) Validate() error {
	var err error
	switch s.Kind {
	case AnalysisTran:
		switch {
		case s.Step <= 0:
			err = errors.New("tran step must be > 0")
		case s.Stop <= s.Start:
			err = errors.New("tran stop must be after start")
		}
	case AnalysisAC:
		switch {
		case s.Points <= 0:
			err = errors.New("ac points must be > 0")
		case s.FStart <= 0 || s.FStop < s.FStart:
			err = errors.New("ac frequency range is invalid")
		}
		switch s.sweep() {
		case "dec", "oct", "lin":
		default:
			err = fmt.Errorf("unsupported ac sweep %q", s.Sweep)
		}
	case AnalysisDC:
		switch {
		case strings.TrimSpace(s.Source) == "":
			err = errors.New("dc source is required")
		case s.Incr == 0:
			err = errors.New("dc increment must be non-zero")
		}
	case AnalysisOP:
	default:
		err = fmt.Errorf("unsupported analysis %q", s.Kind)
	}

	if err != nil {
		return &OpError{
			Op:   "simulation.validate",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("%w: %v", ErrInvalidConfig, err),
		}
	}
	return nil
}

func (s Simulation) sweep() string {
	if s.Sweep == "" {
		return "dec"
	}
	return strings.ToLower(s.Sweep)
}
