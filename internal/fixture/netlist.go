package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
)

const (
	netlistHeader = "* auto-generated netlist from yaaade\n\n"
	// GroundTie shorts the testbench ground net to SPICE node 0.
	GroundTie = "Vgnd0 gnd 0 0"
)

// Section markers, in the order they appear in every netlist.
const (
	SectionIncludes   = "*** Library includes"
	SectionSupplies   = "*** Supply domains"
	SectionComponents = "*** Components"
	SectionDUTs       = "*** DUTs"
	SectionSimulation = "* Simulation command"
)

type instancer interface {
	Instance(d domain.Dialect) string
}

// Netlist assembles the testbench. Order is fixed: includes, supply domains,
// ground tie, components (types then names, DUT definitions included), DUT
// instances, simulation command. A missing DUT group is an error; a missing
// simulation directive only logs a warning.
func (f *Fixture) Netlist() (string, error) {
	duts, ok := f.components.group(domain.TypeDUT)
	if !ok {
		return "", &domain.OpError{
			Op:   "fixture.netlist",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("component group %q: %w", domain.TypeDUT, domain.ErrNotFound),
		}
	}

	d := f.backend
	var b strings.Builder
	b.WriteString(netlistHeader)

	if pre := d.Preamble(); pre != "" {
		b.WriteString(pre)
		b.WriteString("\n\n")
	}

	b.WriteString(SectionIncludes + "\n\n")
	for _, inc := range f.includes {
		b.WriteString(inc.Netlist(d))
		b.WriteString("\n")
	}

	b.WriteString(SectionSupplies + "\n\n")
	for _, pd := range f.domains.ordered() {
		fmt.Fprintf(&b, "* Supply domain: %s\n", pd.Name)
		b.WriteString(pd.Netlist(d))
		b.WriteString("\n")
	}

	b.WriteString(GroundTie + "\n")

	b.WriteString("\n" + SectionComponents + "\n\n")
	for _, c := range f.components.all() {
		fmt.Fprintf(&b, "* Component: %s\n", c.Name())
		b.WriteString(c.Netlist(d))
		b.WriteString("\n")
	}

	b.WriteString("\n" + SectionDUTs + "\n\n")
	for _, c := range duts {
		inst, ok := c.(instancer)
		if !ok {
			return "", &domain.OpError{
				Op:   "fixture.netlist",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%w: component %q in group %q cannot be instantiated", domain.ErrInvalidConfig, c.Name(), domain.TypeDUT),
			}
		}
		fmt.Fprintf(&b, "* DUT: %s\n", c.Name())
		b.WriteString(inst.Instance(d))
		b.WriteString("\n")
	}

	if f.simulation == nil {
		f.log.Warn("fixture.netlist.no_simulation", "msg", "there is no simulation command set")
	}
	b.WriteString(SectionSimulation + "\n")
	if f.simulation != nil {
		b.WriteString(f.simulation.Netlist(d))
		b.WriteString("\n")
	}

	if tr := d.Trailer(); tr != "" {
		b.WriteString(tr)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// NetlistPath is where WriteNetlist puts the netlist for the backend.
func (f *Fixture) NetlistPath() string {
	return filepath.Join(f.backend.RunDir(), f.backend.TempNetlist())
}

// WriteNetlist assembles the netlist and writes it to NetlistPath.
func (f *Fixture) WriteNetlist() (string, error) {
	text, err := f.Netlist()
	if err != nil {
		return "", err
	}

	path := f.NetlistPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "fixture.write_netlist",
			Kind: domain.KindExecution,
			Path: filepath.Dir(path),
			Err:  err,
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "fixture.write_netlist",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	f.log.Info("fixture.netlist.written", "path", path, "bytes", len(text))
	return path, nil
}
