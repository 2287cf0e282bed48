package yamlsettings

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yrrapt/yaaade/internal/domain"
)

func fakeEnv(vars map[string]string) Option {
	return WithLookup(func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	})
}

func TestLoadSettings_SingleInclude(t *testing.T) {
	l := NewLoader(fakeEnv(map[string]string{"PDK_ROOT": "/pdk"}))

	got, err := l.LoadSettings(filepath.Join("testdata", "global.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	want := []string{"/pdk/sky130A/libs.tech/ngspice/sky130.lib.spice"}
	if !reflect.DeepEqual(got.Include, want) {
		t.Fatalf("include = %v, want %v", got.Include, want)
	}
	if got.PVT.Corner.Nominal != "tt" || len(got.PVT.Corner.All) != 5 {
		t.Fatalf("corner = %+v", got.PVT.Corner)
	}
	if got.PVT.Voltage != (domain.Range{Nominal: 1.8, Min: 1.62, Max: 1.98}) {
		t.Fatalf("voltage = %+v", got.PVT.Voltage)
	}
	if got.PVT.Temperature.Min != -40 {
		t.Fatalf("temperature = %+v", got.PVT.Temperature)
	}
}

func TestLoadSettings_IncludeList(t *testing.T) {
	l := NewLoader(fakeEnv(map[string]string{"PDK_ROOT": "/pdk"}))

	got, err := l.LoadSettings(filepath.Join("testdata", "multi.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := []string{"/pdk/models/all.spice", "/opt/extra/devices.lib"}
	if !reflect.DeepEqual(got.Include, want) {
		t.Fatalf("include = %v, want %v", got.Include, want)
	}
	if got.PVT.Corner.Nominal != "ss" {
		t.Fatalf("nominal = %q", got.PVT.Corner.Nominal)
	}
}

func TestLoadSettings_ExpandsSettingsPath(t *testing.T) {
	abs, err := filepath.Abs("testdata")
	if err != nil {
		t.Fatal(err)
	}
	l := NewLoader(fakeEnv(map[string]string{"PROJECT_ROOT": abs, "PDK_ROOT": "/pdk"}))

	got, err := l.LoadSettings("$PROJECT_ROOT/global.yaml")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.Path != filepath.Join(abs, "global.yaml") {
		t.Fatalf("path = %q", got.Path)
	}
}

func TestLoadSettings_Errors(t *testing.T) {
	cases := []struct {
		name string
		path string
		env  map[string]string
		kind domain.ErrorKind
	}{
		{"missing path variable", "$NOT_SET/global.yaml", nil, domain.KindMissingVar},
		{"missing include variable", filepath.Join("testdata", "global.yaml"), nil, domain.KindMissingVar},
		{"missing file", filepath.Join("testdata", "absent.yaml"), nil, domain.KindNotFound},
		{"malformed yaml", filepath.Join("testdata", "broken.yaml"), nil, domain.KindInvalidConfig},
		{"include mapping", filepath.Join("testdata", "badinclude.yaml"), nil, domain.KindInvalidConfig},
		{"empty path", "", nil, domain.KindInvalidConfig},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader(fakeEnv(tc.env)).LoadSettings(tc.path)
			if !domain.IsKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestLoadSettings_MissingVarIsSentinel(t *testing.T) {
	_, err := NewLoader(fakeEnv(nil)).LoadSettings("$PDK_ROOT/x.yaml")
	if !errors.Is(err, domain.ErrMissingVar) {
		t.Fatalf("expected ErrMissingVar, got %v", err)
	}
}
