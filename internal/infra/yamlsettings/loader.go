// Package yamlsettings loads the global settings document: the model
// library includes plus the PVT definition shared by fixtures.
package yamlsettings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

// LookupFunc resolves an environment variable name.
type LookupFunc func(name string) (string, bool)

type Loader struct {
	lookup LookupFunc
}

type Option func(*Loader)

// WithLookup replaces os.LookupEnv for $VAR expansion.
func WithLookup(fn LookupFunc) Option {
	return func(l *Loader) { l.lookup = fn }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.SettingsLoader = (*Loader)(nil)

type yamlRange struct {
	Nominal float64 `yaml:"nominal"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

type yamlSettings struct {
	Include stringList `yaml:"include"`
	PVT     struct {
		Corner struct {
			Nominal string   `yaml:"nominal"`
			All     []string `yaml:"all"`
		} `yaml:"corner"`
		Voltage     yamlRange `yaml:"voltage"`
		Temperature yamlRange `yaml:"temperature"`
	} `yaml:"pvt"`
}

// stringList accepts a scalar or a sequence of scalars.
type stringList []string

func (s *stringList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = stringList{n.Value}
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := n.Decode(&out); err != nil {
			return err
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("line %d: include must be a path or a list of paths", n.Line)
	}
}

// LoadSettings reads the settings document at path. A leading $VAR in the
// path, and in every include entry, is expanded first.
func (l *Loader) LoadSettings(path string) (domain.GlobalSettings, error) {
	const op = "yamlsettings.load"

	if strings.TrimSpace(path) == "" {
		return domain.GlobalSettings{}, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig,
			Err: fmt.Errorf("%w: settings path is empty", domain.ErrInvalidConfig)}
	}

	resolved, err := domain.ExpandPathVar(path, l.lookup)
	if err != nil {
		return domain.GlobalSettings{}, err
	}

	b, err := os.ReadFile(resolved)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.GlobalSettings{}, &domain.OpError{Op: op, Kind: kind, Path: resolved, Err: err}
	}

	var y yamlSettings
	if err := yaml.Unmarshal(b, &y); err != nil {
		return domain.GlobalSettings{}, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: resolved, Err: err}
	}

	includes := make([]string, 0, len(y.Include))
	for _, inc := range y.Include {
		inc = strings.TrimSpace(inc)
		if inc == "" {
			return domain.GlobalSettings{}, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: resolved,
				Err: fmt.Errorf("%w: empty include entry", domain.ErrInvalidConfig)}
		}
		p, err := domain.ExpandPathVar(inc, l.lookup)
		if err != nil {
			return domain.GlobalSettings{}, err
		}
		includes = append(includes, p)
	}

	return domain.GlobalSettings{
		Path:    resolved,
		Include: includes,
		PVT: domain.PVT{
			Corner:      domain.Corners{Nominal: y.PVT.Corner.Nominal, All: y.PVT.Corner.All},
			Voltage:     domain.Range(y.PVT.Voltage),
			Temperature: domain.Range(y.PVT.Temperature),
		},
	}, nil
}
