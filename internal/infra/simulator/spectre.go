package simulator

import (
	"fmt"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// spectreDialect keeps the netlist body in SPICE compatibility mode and
// switches to native spectre syntax for the analysis statement.
type spectreDialect struct {
	domain.SpiceDialect
}

func (spectreDialect) Preamble() string { return "simulator lang=spice" }

func (spectreDialect) Analysis(sim domain.Simulation) string {
	const lang = "simulator lang=spectre\n"
	v := domain.FormatValue

	switch sim.Kind {
	case domain.AnalysisTran:
		line := fmt.Sprintf("tran1 tran step=%s stop=%s", v(sim.Step), v(sim.Stop))
		if sim.Start != 0 {
			line += " start=" + v(sim.Start)
		}
		return lang + line
	case domain.AnalysisAC:
		sweep := strings.ToLower(sim.Sweep)
		if sweep == "" {
			sweep = "dec"
		}
		return lang + fmt.Sprintf("ac1 ac start=%s stop=%s %s=%d", v(sim.FStart), v(sim.FStop), sweep, sim.Points)
	case domain.AnalysisDC:
		return lang + fmt.Sprintf("dc1 dc dev=%s param=dc start=%s stop=%s step=%s", sim.Source, v(sim.From), v(sim.To), v(sim.Incr))
	case domain.AnalysisOP:
		return lang + "op1 dc"
	default:
		return ""
	}
}

// Trailer is empty: the netlist ends in spectre language, where .end is not valid.
func (spectreDialect) Trailer() string { return "" }

// Spectre runs Cadence Spectre with nutmeg ASCII output.
type Spectre struct {
	spectreDialect
	*backend
}

func init() {
	Register(domain.SimulatorSpectre, func(cfg Config) ports.SimulatorBackend { return NewSpectre(cfg) })
}

func NewSpectre(cfg Config) *Spectre {
	return &Spectre{backend: &backend{
		kind:    domain.SimulatorSpectre,
		cfg:     cfg.withDefaults("spectre"),
		rawFile: DefaultRawFile,
		args: func(netlist, raw string) []string {
			return []string{"-format", "nutascii", "-raw", raw, "=log", "spectre.log", netlist}
		},
	}}
}
