package simulator

import (
	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// Ngspice runs ngspice in batch mode, writing an ASCII raw file.
type Ngspice struct {
	domain.SpiceDialect
	*backend
}

func init() {
	Register(domain.SimulatorNgspice, func(cfg Config) ports.SimulatorBackend { return NewNgspice(cfg) })
}

func NewNgspice(cfg Config) *Ngspice {
	return &Ngspice{backend: &backend{
		kind:    domain.SimulatorNgspice,
		cfg:     cfg.withDefaults("ngspice"),
		rawFile: DefaultRawFile,
		args: func(netlist, raw string) []string {
			return []string{"-b", "-r", raw, "-o", "ngspice.log", netlist}
		},
		env: []string{"SPICE_ASCIIRAWFILE=1"},
	}}
}
