package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/yrrapt/yaaade/internal/app/template"
	"github.com/yrrapt/yaaade/internal/ports"
)

// ValidateFixture checks a fixture file without running xschem or a
// simulator: every {{param}} must be defined and every component must be
// well formed. Findings that do not stop a run come back as warnings.
type ValidateFixture struct {
	fixtures ports.FixtureLoader
}

func NewValidateFixture(fl ports.FixtureLoader) *ValidateFixture {
	return &ValidateFixture{fixtures: fl}
}

func (uc *ValidateFixture) Execute(ctx context.Context, fixturePath string) (warnings []string, err error) {
	spec, err := uc.fixtures.LoadFixture(fixturePath)
	if err != nil {
		return nil, err
	}

	used := map[string]bool{}
	render := func(where, s string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, name := range template.Placeholders(s) {
			used[name] = true
		}
		if _, err := template.RenderString(s, spec.Params); err != nil {
			return fmt.Errorf("%s: %w", where, withPath(err, fixturePath))
		}
		return nil
	}

	for i, pin := range spec.DUT.Pins {
		if err := render(fmt.Sprintf("dut pin %d", i), pin); err != nil {
			return nil, err
		}
	}
	if err := render("dut netlist", spec.DUT.NetlistPath); err != nil {
		return nil, err
	}
	for _, inc := range spec.Includes {
		if err := render("include", inc.Path); err != nil {
			return nil, err
		}
	}
	for _, pd := range spec.PowerDomains {
		for _, net := range pd.Nets {
			if err := render(fmt.Sprintf("power domain %q", pd.Name), net); err != nil {
				return nil, err
			}
		}
	}
	for _, cs := range spec.Components {
		where := fmt.Sprintf("component %s/%s", cs.Type, cs.Name)
		for _, n := range cs.Nodes {
			if err := render(where, n); err != nil {
				return nil, err
			}
		}
		if err := render(where, cs.Text); err != nil {
			return nil, err
		}
		if _, err := renderComponent(cs, spec.Params); err != nil {
			return nil, fmt.Errorf("%s: %w", where, withPath(err, fixturePath))
		}
	}

	if spec.Simulation == nil {
		warnings = append(warnings, "no simulation directive: the netlist will have no analysis")
	}
	if len(spec.Checks) == 0 {
		warnings = append(warnings, "no checks: runs always pass when the simulation succeeds")
	}

	var unused []string
	for name := range spec.Params {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	for _, name := range unused {
		warnings = append(warnings, fmt.Sprintf("param %q is never used", name))
	}
	return warnings, nil
}
