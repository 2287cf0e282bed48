package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yrrapt/yaaade/internal/domain"
)

// LoadConfig loads yaaade.yaml from the workspace root on top of
// domain.DefaultConfig. The simulator default is validated here so a typo
// fails before any fixture is built.
func LoadConfig(root string) (domain.Config, error) {
	const op = "workspacefinder.loadconfig"
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: path, Err: err}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	if s := strings.TrimSpace(y.Yaaade.Defaults.Simulator); s != "" {
		kind, err := domain.ParseSimulatorKind(s)
		if err != nil {
			return cfg, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: path, Err: err}
		}
		cfg.Defaults.Simulator = string(kind)
	}
	if y.Yaaade.Defaults.Settings != "" {
		cfg.Defaults.Settings = y.Yaaade.Defaults.Settings
	}
	if y.Yaaade.Paths.FixturesDir != "" {
		cfg.Paths.FixturesDir = y.Yaaade.Paths.FixturesDir
	}
	if y.Yaaade.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Yaaade.Paths.RunsDir
	}
	if y.Yaaade.Paths.RunDir != "" {
		cfg.Paths.RunDir = y.Yaaade.Paths.RunDir
	}

	cfg.Xschem.Strict = y.Yaaade.Xschem.Strict

	return cfg, nil
}

type yamlConfig struct {
	Yaaade struct {
		Defaults struct {
			Simulator string `yaml:"simulator"`
			Settings  string `yaml:"settings"`
		} `yaml:"defaults"`

		Paths struct {
			FixturesDir string `yaml:"fixtures_dir"`
			RunsDir     string `yaml:"runs_dir"`
			RunDir      string `yaml:"run_dir"`
		} `yaml:"paths"`

		Xschem struct {
			Strict bool `yaml:"strict"`
		} `yaml:"xschem"`
	} `yaml:"yaaade"`
}
