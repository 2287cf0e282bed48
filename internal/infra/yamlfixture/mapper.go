package yamlfixture

import (
	"fmt"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
)

func mapAndValidate(path string, yf yamlFixture) (domain.FixtureSpec, error) {
	if strings.TrimSpace(yf.Name) == "" {
		return domain.FixtureSpec{}, invalidField(path, "name", "fixture name is required")
	}

	dut, err := mapDUT(path, yf.DUT)
	if err != nil {
		return domain.FixtureSpec{}, err
	}

	spec := domain.FixtureSpec{
		Name:     yf.Name,
		Path:     path,
		DUT:      dut,
		Settings: strings.TrimSpace(yf.Settings),
		Corner:   strings.TrimSpace(yf.Corner),
		Params:   domain.Vars(yf.Params),
	}
	if spec.Params == nil {
		spec.Params = domain.Vars{}
	}

	for i, inc := range yf.Includes {
		if strings.TrimSpace(inc.Path) == "" {
			return domain.FixtureSpec{}, invalidField(path, fmt.Sprintf("includes[%d].path", i), "include path is required")
		}
		spec.Includes = append(spec.Includes, domain.IncludeLibrary{Path: inc.Path, Corner: inc.Corner})
	}

	seen := map[string]bool{}
	for i, pd := range yf.PowerDomains {
		field := fmt.Sprintf("power_domains[%d]", i)
		if strings.TrimSpace(pd.Name) == "" {
			return domain.FixtureSpec{}, invalidField(path, field+".name", "power domain name is required")
		}
		if seen[pd.Name] {
			return domain.FixtureSpec{}, invalidField(path, field+".name", fmt.Sprintf("duplicate power domain %q", pd.Name))
		}
		seen[pd.Name] = true
		spec.PowerDomains = append(spec.PowerDomains, domain.PowerDomainSpec{
			Name:    pd.Name,
			Voltage: float64(pd.Voltage),
			Ground:  pd.Ground,
			Nets:    pd.Nets,
		})
	}

	for i, c := range yf.Components {
		cs, err := mapComponent(path, fmt.Sprintf("components[%d]", i), c)
		if err != nil {
			return domain.FixtureSpec{}, err
		}
		spec.Components = append(spec.Components, cs)
	}

	if yf.Simulation != nil {
		sim, err := mapSimulation(path, *yf.Simulation)
		if err != nil {
			return domain.FixtureSpec{}, err
		}
		spec.Simulation = sim
	}

	for i, c := range yf.Checks {
		field := fmt.Sprintf("checks[%d]", i)
		if strings.TrimSpace(c.Expr) == "" {
			return domain.FixtureSpec{}, invalidField(path, field+".expr", "check expression is required")
		}
		if !c.Exists && c.Eq == nil && c.Contains == nil && c.Matches == nil && c.Gt == nil && c.Lt == nil {
			return domain.FixtureSpec{}, invalidField(path, field, "check needs at least one of exists, eq, contains, matches, gt, lt")
		}
		spec.Checks = append(spec.Checks, domain.CheckSpec{
			Expr:     c.Expr,
			Exists:   c.Exists,
			Eq:       c.Eq,
			Contains: c.Contains,
			Matches:  c.Matches,
			Gt:       c.Gt,
			Lt:       c.Lt,
		})
	}

	return spec, nil
}

func mapDUT(path string, d yamlDUT) (domain.DUTSpec, error) {
	hasCell := strings.TrimSpace(d.Cell) != ""
	hasNetlist := strings.TrimSpace(d.Netlist) != ""

	switch {
	case hasCell && hasNetlist:
		return domain.DUTSpec{}, invalidField(path, "dut", "set either cell or netlist, not both")
	case !hasCell && !hasNetlist:
		return domain.DUTSpec{}, invalidField(path, "dut", "cell or netlist is required")
	case hasCell && strings.TrimSpace(d.Library) == "":
		return domain.DUTSpec{}, invalidField(path, "dut.library", "library is required with cell")
	}

	name := d.Name
	if strings.TrimSpace(name) == "" {
		name = "dut"
	}
	return domain.DUTSpec{
		Name:        name,
		Library:     d.Library,
		Cell:        d.Cell,
		NetlistPath: d.Netlist,
		Pins:        d.Pins,
	}, nil
}

func mapComponent(path, field string, c yamlComponent) (domain.ComponentSpec, error) {
	typ := domain.ComponentType(strings.ToLower(strings.TrimSpace(c.Type)))
	if typ == "" {
		return domain.ComponentSpec{}, invalidField(path, field+".type", "component type is required")
	}

	cs := domain.ComponentSpec{
		Type:  typ,
		Name:  c.Name,
		Nodes: c.Nodes,
		Value: float64(c.Value),
		Waveform: domain.Waveform{
			DC: float64(c.DC),
			AC: float64(c.AC),
		},
		Text: c.Text,
	}
	if p := c.Pulse; p != nil {
		cs.Waveform.Pulse = &domain.Pulse{
			V1:     float64(p.V1),
			V2:     float64(p.V2),
			Delay:  float64(p.Delay),
			Rise:   float64(p.Rise),
			Fall:   float64(p.Fall),
			Width:  float64(p.Width),
			Period: float64(p.Period),
		}
	}

	// params are rendered when the fixture is built, so only the shape is
	// checked here
	if _, err := cs.Component(); err != nil {
		return domain.ComponentSpec{}, fieldError(path, field, err)
	}
	return cs, nil
}

func mapSimulation(path string, s yamlSimulation) (*domain.Simulation, error) {
	var sims []*domain.Simulation
	if s.Tran != nil {
		sim := domain.Transient(float64(s.Tran.Step), float64(s.Tran.Stop))
		sim.Start = float64(s.Tran.Start)
		sims = append(sims, sim)
	}
	if s.AC != nil {
		sims = append(sims, domain.ACSweep(s.AC.Sweep, s.AC.Points, float64(s.AC.FStart), float64(s.AC.FStop)))
	}
	if s.DC != nil {
		sims = append(sims, domain.DCSweep(s.DC.Source, float64(s.DC.Start), float64(s.DC.Stop), float64(s.DC.Step)))
	}
	if s.OP {
		sims = append(sims, domain.OperatingPoint())
	}

	if len(sims) != 1 {
		return nil, invalidField(path, "simulation", fmt.Sprintf("exactly one of tran, ac, dc, op is required, got %d", len(sims)))
	}
	if err := sims[0].Validate(); err != nil {
		return nil, fieldError(path, "simulation", err)
	}
	return sims[0], nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlfixture.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%w: field %s: %s", domain.ErrInvalidConfig, field, msg),
	}
}

func fieldError(path, field string, err error) error {
	return &domain.OpError{
		Op:   "yamlfixture.validate",
		Kind: domain.KindOf(err),
		Path: path,
		Err:  fmt.Errorf("field %s: %w", field, err),
	}
}
