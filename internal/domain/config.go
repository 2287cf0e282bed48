package domain

// Config represents the workspace configuration loaded from yaaade.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
	Xschem   XschemConfig
}

type XschemConfig struct {
	// Strict fails the build when xschem exits non-zero.
	Strict bool
}

type DefaultsConfig struct {
	Simulator string
	// Settings is the global settings document used when a fixture names none.
	Settings string
}

type PathsConfig struct {
	FixturesDir string
	RunsDir     string
	RunDir      string
}

// WorkspaceSpec describes a workspace to scaffold.
type WorkspaceSpec struct {
	Root string
}

// DefaultConfig provides sane defaults if yaaade.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Simulator: string(SimulatorNgspice),
		},
		Paths: PathsConfig{
			FixturesDir: "fixtures",
			RunsDir:     "runs",
			RunDir:      "_rundir",
		},
	}
}
