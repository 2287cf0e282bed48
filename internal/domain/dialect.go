package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect renders the netlist fragments whose syntax differs between
// simulators. Entities render themselves through it.
type Dialect interface {
	// Preamble is emitted right after the netlist header (may be empty).
	Preamble() string
	Include(path, corner string) string
	VoltageSource(name, pos, neg string, w Waveform) string
	CurrentSource(name, pos, neg string, w Waveform) string
	Analysis(sim Simulation) string
	// Trailer is emitted after the simulation command (may be empty).
	Trailer() string
}

// Pulse is a SPICE PULSE(v1 v2 td tr tf pw per) waveform.
type Pulse struct {
	V1     float64
	V2     float64
	Delay  float64
	Rise   float64
	Fall   float64
	Width  float64
	Period float64
}

// Waveform describes an independent source. A nil Pulse means DC.
type Waveform struct {
	DC    float64
	Pulse *Pulse
	// AC magnitude for small-signal analysis; zero omits the AC term.
	AC float64
}

// SpiceDialect is plain Berkeley SPICE syntax, accepted by ngspice and Xyce.
// Backends embed it and override what they render differently.
type SpiceDialect struct{}

var _ Dialect = SpiceDialect{}

func (SpiceDialect) Preamble() string { return "" }

func (SpiceDialect) Include(path, corner string) string {
	if strings.TrimSpace(corner) == "" {
		return fmt.Sprintf(".include %q", path)
	}
	return fmt.Sprintf(".lib %q %s", path, corner)
}

func (SpiceDialect) VoltageSource(name, pos, neg string, w Waveform) string {
	return sourceLine(ElementName('V', name), pos, neg, w)
}

func (SpiceDialect) CurrentSource(name, pos, neg string, w Waveform) string {
	return sourceLine(ElementName('I', name), pos, neg, w)
}

func (SpiceDialect) Analysis(sim Simulation) string {
	switch sim.Kind {
	case AnalysisTran:
		line := fmt.Sprintf(".tran %s %s", FormatValue(sim.Step), FormatValue(sim.Stop))
		if sim.Start != 0 {
			line += " " + FormatValue(sim.Start)
		}
		return line
	case AnalysisAC:
		return fmt.Sprintf(".ac %s %d %s %s", sim.sweep(), sim.Points, FormatValue(sim.FStart), FormatValue(sim.FStop))
	case AnalysisDC:
		return fmt.Sprintf(".dc %s %s %s %s", sim.Source, FormatValue(sim.From), FormatValue(sim.To), FormatValue(sim.Incr))
	case AnalysisOP:
		return ".op"
	default:
		return ""
	}
}

func (SpiceDialect) Trailer() string { return ".end" }

func sourceLine(name, pos, neg string, w Waveform) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", name, pos, neg)
	if w.Pulse != nil {
		p := w.Pulse
		fmt.Fprintf(&b, " PULSE(%s %s %s %s %s %s %s)",
			FormatValue(p.V1), FormatValue(p.V2), FormatValue(p.Delay),
			FormatValue(p.Rise), FormatValue(p.Fall), FormatValue(p.Width), FormatValue(p.Period))
	} else {
		fmt.Fprintf(&b, " DC %s", FormatValue(w.DC))
	}
	if w.AC != 0 {
		fmt.Fprintf(&b, " AC %s", FormatValue(w.AC))
	}
	return b.String()
}

// FormatValue renders a number the way SPICE reads it back unchanged
// (shortest round-trip form, e.g. 1e-09, 1.8, 1000).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ElementName makes sure a SPICE element name carries its device letter.
// "R1" stays "R1"; "load" becomes "Rload".
func ElementName(letter byte, name string) string {
	if name != "" && (name[0] == letter || name[0] == letter+('a'-'A')) {
		return name
	}
	return string(letter) + name
}
