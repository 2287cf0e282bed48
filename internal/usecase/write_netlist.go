package usecase

import (
	"context"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// WriteNetlist builds a fixture and writes its netlist without simulating.
type WriteNetlist struct {
	fixtures ports.FixtureLoader
	builder  *BuildFixture

	defaultSettings string
}

func NewWriteNetlist(fl ports.FixtureLoader, b *BuildFixture, defaultSettings string) *WriteNetlist {
	return &WriteNetlist{fixtures: fl, builder: b, defaultSettings: defaultSettings}
}

// NetlistOutput is the rendered netlist and where it was written.
type NetlistOutput struct {
	Path string
	Text string
}

// Execute writes the netlist when write is true; otherwise it only renders.
func (uc *WriteNetlist) Execute(ctx context.Context, fixturePath string, kind domain.SimulatorKind, write bool) (NetlistOutput, error) {
	spec, err := uc.fixtures.LoadFixture(fixturePath)
	if err != nil {
		return NetlistOutput{}, err
	}
	if spec.Settings == "" {
		spec.Settings = uc.defaultSettings
	}

	built, err := uc.builder.Execute(ctx, spec, kind)
	if err != nil {
		return NetlistOutput{}, err
	}

	text, err := built.Fixture.Netlist()
	if err != nil {
		return NetlistOutput{}, err
	}
	out := NetlistOutput{Text: text}
	if write {
		if out.Path, err = built.Fixture.WriteNetlist(); err != nil {
			return NetlistOutput{}, err
		}
	}
	return out, nil
}
