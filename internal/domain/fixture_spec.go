package domain

import (
	"fmt"
	"strings"
)

// Vars holds fixture parameters used to render {{name}} placeholders.
type Vars map[string]string

// DUTSpec says where the device under test comes from: either a schematic
// (Library/Cell, netlisted by the schematic tool) or a netlist file.
type DUTSpec struct {
	Name        string
	Library     string
	Cell        string
	NetlistPath string
	Pins        []string
}

// PowerDomainSpec declares a supply of the fixture.
type PowerDomainSpec struct {
	Name    string
	Voltage float64
	Ground  string
	Nets    []string
}

// ComponentSpec declares one testbench element.
type ComponentSpec struct {
	Type     ComponentType
	Name     string
	Nodes    []string
	Value    float64
	Waveform Waveform
	Text     string // raw SPICE for TypeRaw (or any custom type)
}

// CheckSpec is a JSONPath check over the run summary document.
type CheckSpec struct {
	Expr     string
	Exists   bool
	Eq       *string
	Contains *string
	Matches  *string
	Gt       *float64
	Lt       *float64
}

// FixtureSpec is a declarative testbench, the file form of a Fixture.
type FixtureSpec struct {
	Name string
	Path string

	DUT      DUTSpec
	Settings string // global settings document (include + pvt)
	Corner   string // overrides the settings' nominal corner
	Params   Vars

	Includes     []IncludeLibrary
	PowerDomains []PowerDomainSpec
	Components   []ComponentSpec
	Simulation   *Simulation
	Checks       []CheckSpec
}

// FixtureRef is a listing entry for a fixture file.
type FixtureRef struct {
	Name string
	Path string
}

// Component builds the declared element.
func (c ComponentSpec) Component() (Component, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, invalidSpec("component name is required")
	}

	switch c.Type {
	case TypeResistor, TypeCapacitor, TypeInductor, TypeVoltageSource, TypeCurrentSource:
		if len(c.Nodes) != 2 {
			return nil, invalidSpec(fmt.Sprintf("component %q: %s needs exactly 2 nodes, got %d", c.Name, c.Type, len(c.Nodes)))
		}
	case TypeDUT:
		return nil, invalidSpec(fmt.Sprintf("component %q: the dut is declared under dut, not components", c.Name))
	}

	switch c.Type {
	case TypeResistor:
		return NewResistor(c.Name, c.Nodes[0], c.Nodes[1], c.Value), nil
	case TypeCapacitor:
		return NewCapacitor(c.Name, c.Nodes[0], c.Nodes[1], c.Value), nil
	case TypeInductor:
		return NewInductor(c.Name, c.Nodes[0], c.Nodes[1], c.Value), nil
	case TypeVoltageSource:
		return NewVoltageSource(c.Name, c.Nodes[0], c.Nodes[1], c.Waveform), nil
	case TypeCurrentSource:
		return NewCurrentSource(c.Name, c.Nodes[0], c.Nodes[1], c.Waveform), nil
	default:
		if strings.TrimSpace(c.Text) == "" {
			return nil, invalidSpec(fmt.Sprintf("component %q: raw text is required for type %q", c.Name, c.Type))
		}
		return NewRaw(c.Type, c.Name, c.Text), nil
	}
}

func invalidSpec(msg string) error {
	return &OpError{
		Op:   "fixture.spec",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%w: %s", ErrInvalidConfig, msg),
	}
}
