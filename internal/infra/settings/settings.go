// Package settings resolves the process-level settings that come from the
// environment: simulator choice, project root and home directory.
package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yrrapt/yaaade/internal/domain"
)

const (
	KeySimulator   = "simulator"
	KeyProjectRoot = "project_root"
	KeyHome        = "home"

	FlagSimulator = "simulator"
)

// Env is the resolved environment.
type Env struct {
	Simulator   domain.SimulatorKind
	ProjectRoot string
	Home        string
}

// Loader wraps a private viper instance bound to the environment and,
// optionally, to command-line flags.
type Loader struct {
	v         *viper.Viper
	overrides map[string]bool
}

// NewLoader binds SIMULATOR, PROJECT_ROOT and HOME. fallbackSimulator is
// used when neither the flag nor the environment names one (typically the
// workspace config default).
func NewLoader(fallbackSimulator string) *Loader {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fallbackSimulator == "" {
		fallbackSimulator = string(domain.SimulatorNgspice)
	}
	v.SetDefault(KeySimulator, fallbackSimulator)

	_ = v.BindEnv(KeySimulator, "SIMULATOR")
	_ = v.BindEnv(KeyProjectRoot, "PROJECT_ROOT")
	_ = v.BindEnv(KeyHome, "HOME")

	return &Loader{v: v, overrides: map[string]bool{}}
}

// BindFlags lets --simulator override the environment. Only flags the
// user actually set take precedence.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	if f := fs.Lookup(FlagSimulator); f != nil {
		if err := l.v.BindPFlag(KeySimulator, f); err != nil {
			return fmt.Errorf("bind --%s: %w", FlagSimulator, err)
		}
	}
	return nil
}

// Set overrides a key for the lifetime of the loader.
func (l *Loader) Set(key string, value any) {
	l.v.Set(key, value)
	l.overrides[strings.ToLower(key)] = true
}

// Load resolves and validates the environment.
func (l *Loader) Load() (Env, error) {
	kind, err := domain.ParseSimulatorKind(l.v.GetString(KeySimulator))
	if err != nil {
		return Env{}, err
	}
	return Env{
		Simulator:   kind,
		ProjectRoot: l.v.GetString(KeyProjectRoot),
		Home:        l.v.GetString(KeyHome),
	}, nil
}

// Lookup resolves $NAME for path expansion. Overrides made with Set win
// over the process environment. Defaults and flag bindings are not
// consulted, so an unset $SIMULATOR stays unset.
func (l *Loader) Lookup(name string) (string, bool) {
	key := strings.ToLower(name)
	if l.overrides[key] {
		return l.v.GetString(key), true
	}
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
