package domain

import "strings"

const defaultGroundNet = "gnd"

// PowerDomain is a named supply: one voltage driving one or more nets
// against a common ground net.
type PowerDomain struct {
	Name    string
	Voltage float64
	Ground  string   // defaults to "gnd"
	Nets    []string // defaults to []string{Name}
}

func NewPowerDomain(name string, voltage float64, nets ...string) *PowerDomain {
	return &PowerDomain{Name: name, Voltage: voltage, Nets: nets}
}

// Netlist emits one DC voltage source per supply net.
func (p *PowerDomain) Netlist(d Dialect) string {
	ground := p.Ground
	if strings.TrimSpace(ground) == "" {
		ground = defaultGroundNet
	}
	nets := p.Nets
	if len(nets) == 0 {
		nets = []string{p.Name}
	}

	lines := make([]string, 0, len(nets))
	for _, net := range nets {
		lines = append(lines, d.VoltageSource("V"+net, net, ground, Waveform{DC: p.Voltage}))
	}
	return strings.Join(lines, "\n")
}

// IncludeLibrary is a model library rendered against a PVT corner.
type IncludeLibrary struct {
	Path   string
	Corner string
}

func (i IncludeLibrary) Netlist(d Dialect) string {
	return d.Include(i.Path, i.Corner)
}
