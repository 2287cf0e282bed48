package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yrrapt/yaaade/internal/domain"
)

func TestWriteNetlist(t *testing.T) {
	backend := &fakeBackend{runDir: filepath.Join(t.TempDir(), "_rundir")}
	b := NewBuildFixture(&fakeFactory{backend: backend}, &fakeNetlister{text: inverterSubckt}, globalSettings())
	uc := NewWriteNetlist(fakeFixtureLoader{spec: inverterSpec()}, b, "")

	dry, err := uc.Execute(context.Background(), "f.yaml", domain.SimulatorNgspice, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if dry.Path != "" || !strings.Contains(dry.Text, "Xinv vdd in out gnd inverter") {
		t.Fatalf("dry run = %+v", dry)
	}
	if _, err := os.Stat(backend.runDir); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the run dir")
	}

	out, err := uc.Execute(context.Background(), "f.yaml", domain.SimulatorNgspice, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b2, err := os.ReadFile(out.Path)
	if err != nil || string(b2) != out.Text {
		t.Fatalf("written netlist differs: %v", err)
	}
	if backend.ran {
		t.Fatalf("netlist must not run the simulator")
	}
}

func TestValidateFixture(t *testing.T) {
	spec := inverterSpec()
	spec.Params["unused"] = "x"
	spec.Checks = nil

	warnings, err := NewValidateFixture(fakeFixtureLoader{spec: spec}).Execute(context.Background(), "f.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, `param "unused" is never used`) || !strings.Contains(joined, "no checks") {
		t.Fatalf("warnings = %v", warnings)
	}
	// w is only referenced by the generated netlist, which validation never sees
	if !strings.Contains(joined, `param "w"`) {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestValidateFixture_MissingParam(t *testing.T) {
	spec := inverterSpec()
	spec.Components = append(spec.Components, domain.ComponentSpec{
		Type: domain.TypeRaw, Name: "meas", Text: ".meas tran t when v(out)={{half}}",
	})

	_, err := NewValidateFixture(fakeFixtureLoader{spec: spec}).Execute(context.Background(), "f.yaml")
	if !domain.IsKind(err, domain.KindMissingVar) {
		t.Fatalf("expected missing_variable, got %v", err)
	}
	if !strings.Contains(err.Error(), "component raw/meas") || !strings.Contains(err.Error(), "f.yaml") {
		t.Fatalf("error lacks context: %v", err)
	}
}

func TestListFixtures(t *testing.T) {
	refs, err := NewListFixtures(fakeFixtureLoader{spec: inverterSpec()}).Execute("/ws")
	if err != nil || len(refs) != 1 || refs[0].Name != "inverter_tran" {
		t.Fatalf("refs = %+v, err = %v", refs, err)
	}
}

func TestInitWorkspace(t *testing.T) {
	ini := &fakeInitializer{}
	dir := t.TempDir()

	root, err := NewInitWorkspace(ini).Execute(dir, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if root != dir || ini.got.Root != dir || !ini.force {
		t.Fatalf("root = %q init = %+v", root, ini)
	}

	root, err = NewInitWorkspace(ini).Execute("", false)
	if err != nil || !filepath.IsAbs(root) {
		t.Fatalf("empty root should resolve to cwd, got %q %v", root, err)
	}
}
