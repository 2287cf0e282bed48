package domain

import (
	"fmt"
	"strings"
)

// ComponentType groups components in a fixture; names are unique within a type.
type ComponentType string

const (
	TypeResistor      ComponentType = "resistor"
	TypeCapacitor     ComponentType = "capacitor"
	TypeInductor      ComponentType = "inductor"
	TypeVoltageSource ComponentType = "vsource"
	TypeCurrentSource ComponentType = "isource"
	TypeRaw           ComponentType = "raw"
	TypeDUT           ComponentType = "dut"
)

// Component is a circuit element that renders itself as SPICE text.
type Component interface {
	Name() string
	Type() ComponentType
	Netlist(d Dialect) string
}

// Passive is a two-terminal R, L or C.
type Passive struct {
	typ   ComponentType
	name  string
	pos   string
	neg   string
	value float64
}

func NewResistor(name, pos, neg string, ohms float64) *Passive {
	return &Passive{typ: TypeResistor, name: name, pos: pos, neg: neg, value: ohms}
}

func NewCapacitor(name, pos, neg string, farads float64) *Passive {
	return &Passive{typ: TypeCapacitor, name: name, pos: pos, neg: neg, value: farads}
}

func NewInductor(name, pos, neg string, henries float64) *Passive {
	return &Passive{typ: TypeInductor, name: name, pos: pos, neg: neg, value: henries}
}

func (p *Passive) Name() string        { return p.name }
func (p *Passive) Type() ComponentType { return p.typ }
func (p *Passive) Value() float64      { return p.value }

func (p *Passive) Netlist(_ Dialect) string {
	return fmt.Sprintf("%s %s %s %s", ElementName(passiveLetter(p.typ), p.name), p.pos, p.neg, FormatValue(p.value))
}

func passiveLetter(t ComponentType) byte {
	switch t {
	case TypeCapacitor:
		return 'C'
	case TypeInductor:
		return 'L'
	default:
		return 'R'
	}
}

// Source is an independent voltage or current source.
type Source struct {
	typ      ComponentType
	name     string
	pos      string
	neg      string
	waveform Waveform
}

func NewVoltageSource(name, pos, neg string, w Waveform) *Source {
	return &Source{typ: TypeVoltageSource, name: name, pos: pos, neg: neg, waveform: w}
}

func NewCurrentSource(name, pos, neg string, w Waveform) *Source {
	return &Source{typ: TypeCurrentSource, name: name, pos: pos, neg: neg, waveform: w}
}

func (s *Source) Name() string        { return s.name }
func (s *Source) Type() ComponentType { return s.typ }

func (s *Source) Netlist(d Dialect) string {
	if s.typ == TypeCurrentSource {
		return d.CurrentSource(s.name, s.pos, s.neg, s.waveform)
	}
	return d.VoltageSource(s.name, s.pos, s.neg, s.waveform)
}

// Raw is caller-supplied SPICE text kept verbatim.
type Raw struct {
	typ  ComponentType
	name string
	text string
}

// NewRaw registers text under typ; an empty typ means TypeRaw.
func NewRaw(typ ComponentType, name, text string) *Raw {
	if typ == "" {
		typ = TypeRaw
	}
	return &Raw{typ: typ, name: name, text: text}
}

func (r *Raw) Name() string             { return r.name }
func (r *Raw) Type() ComponentType      { return r.typ }
func (r *Raw) Netlist(_ Dialect) string { return strings.TrimRight(r.text, "\n") }

// DUT is the device under test: a generated subcircuit plus the instance
// that places it in the testbench.
type DUT struct {
	name    string
	cell    string
	pins    []string
	netlist string
}

// NewDUT wraps a subcircuit netlist. When pins is empty, cell and pins are
// taken from the first .subckt line of the netlist.
func NewDUT(name, netlist string, pins ...string) *DUT {
	cell, parsed := ParseSubcktHeader(netlist)
	if len(pins) == 0 {
		pins = parsed
	}
	return &DUT{
		name:    name,
		cell:    cell,
		pins:    append([]string(nil), pins...),
		netlist: netlist,
	}
}

func (d *DUT) Name() string        { return d.name }
func (d *DUT) Type() ComponentType { return TypeDUT }
func (d *DUT) Cell() string        { return d.cell }
func (d *DUT) Pins() []string      { return append([]string(nil), d.pins...) }

// Netlist returns the subcircuit definition.
func (d *DUT) Netlist(_ Dialect) string {
	return strings.TrimRight(d.netlist, "\n")
}

// Instance returns the X-line that instantiates the subcircuit.
func (d *DUT) Instance(_ Dialect) string {
	cell := d.cell
	if cell == "" {
		cell = d.name
	}
	parts := make([]string, 0, len(d.pins)+2)
	parts = append(parts, ElementName('X', d.name))
	parts = append(parts, d.pins...)
	parts = append(parts, cell)
	return strings.Join(parts, " ")
}

// ParseSubcktHeader returns the cell name and pin list of the first .subckt
// statement, following "+" continuation lines. Parameter assignments
// (name=value) end the pin list.
func ParseSubcktHeader(netlist string) (cell string, pins []string) {
	lines := strings.Split(netlist, "\n")
	for i := 0; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 2 || !strings.EqualFold(fields[0], ".subckt") {
			continue
		}

		cell = fields[1]
		tokens := fields[2:]
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if !strings.HasPrefix(next, "+") {
				break
			}
			tokens = append(tokens, strings.Fields(strings.TrimPrefix(next, "+"))...)
		}

		for _, tok := range tokens {
			if strings.Contains(tok, "=") || strings.EqualFold(tok, "params:") {
				break
			}
			pins = append(pins, tok)
		}
		return cell, pins
	}
	return "", nil
}

// NetlistTrailerMarker starts the trailer the schematic tool appends to a
// generated cell netlist.
const NetlistTrailerMarker = "** flattened .save nodes"

// TrimNetlistTrailer drops everything from NetlistTrailerMarker onwards.
func TrimNetlistTrailer(netlist string) string {
	if i := strings.Index(netlist, NetlistTrailerMarker); i >= 0 {
		return netlist[:i]
	}
	return netlist
}
