package simulator

import (
	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// Xyce runs Xyce with an ASCII raw output file.
type Xyce struct {
	domain.SpiceDialect
	*backend
}

func init() {
	Register(domain.SimulatorXyce, func(cfg Config) ports.SimulatorBackend { return NewXyce(cfg) })
}

func NewXyce(cfg Config) *Xyce {
	return &Xyce{backend: &backend{
		kind:    domain.SimulatorXyce,
		cfg:     cfg.withDefaults("Xyce"),
		rawFile: DefaultRawFile,
		args: func(netlist, raw string) []string {
			return []string{"-r", raw, "-a", "-l", "xyce.log", netlist}
		},
	}}
}
