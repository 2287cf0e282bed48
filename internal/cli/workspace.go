package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/infra/logger"
	"github.com/yrrapt/yaaade/internal/infra/runstore"
	"github.com/yrrapt/yaaade/internal/infra/settings"
	"github.com/yrrapt/yaaade/internal/infra/simulator"
	"github.com/yrrapt/yaaade/internal/infra/workspacefinder"
	"github.com/yrrapt/yaaade/internal/infra/xschem"
	"github.com/yrrapt/yaaade/internal/infra/yamlfixture"
	"github.com/yrrapt/yaaade/internal/infra/yamlsettings"
	"github.com/yrrapt/yaaade/internal/ui/tui"
	"github.com/yrrapt/yaaade/internal/usecase"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	env  settings.Env

	fixtures *yamlfixture.Loader
	builder  *usecase.BuildFixture
	store    *runstore.JSONStore

	defaultSettings string
}

// loadWorkspace wires the fixture pipeline for one command. flags may be
// nil; when it carries --simulator that flag overrides SIMULATOR.
func loadWorkspace(workspaceFlag string, flags *pflag.FlagSet) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	envLoader := settings.NewLoader(cfg.Defaults.Simulator)
	if flags != nil {
		if err := envLoader.BindFlags(flags); err != nil {
			return nil, err
		}
	}
	// $PROJECT_ROOT defaults to the workspace so settings paths resolve
	if strings.TrimSpace(os.Getenv("PROJECT_ROOT")) == "" {
		envLoader.Set(settings.KeyProjectRoot, root)
	}
	env, err := envLoader.Load()
	if err != nil {
		return nil, err
	}

	netlister := xschem.New(xschem.Config{
		ProjectRoot: env.ProjectRoot,
		Home:        env.Home,
		Strict:      cfg.Xschem.Strict,
		Logger:      logger.Component("xschem"),
	})
	simulators := simulator.Registry{Config: simulator.Config{
		RunDir: underRoot(root, cfg.Paths.RunDir),
		Logger: logger.Component("simulator"),
	}}
	settingsLoader := yamlsettings.NewLoader(yamlsettings.WithLookup(envLoader.Lookup))

	builder := usecase.NewBuildFixture(simulators, netlister, settingsLoader,
		usecase.WithLookup(envLoader.Lookup),
		usecase.WithBuildLogger(logger.Component("fixture")),
	)

	return &workspaceCtx{
		root:            root,
		cfg:             cfg,
		env:             env,
		fixtures:        yamlfixture.NewLoader(yamlfixture.WithFixturesDir(cfg.Paths.FixturesDir)),
		builder:         builder,
		store:           runstore.NewJSONStore(root, cfg, runstore.WithIndex(true), runstore.WithNetlist(true)),
		defaultSettings: resolveSettingsPath(root, cfg.Defaults.Settings),
	}, nil
}

// openWorkspace wires the interactive browser for a workspace root.
func openWorkspace(root string) (tui.Workspace, error) {
	ws, err := loadWorkspace(root, nil)
	if err != nil {
		return tui.Workspace{}, err
	}
	runner := usecase.NewRunFixture(ws.fixtures, ws.builder,
		usecase.WithDefaultSettings(ws.defaultSettings),
		usecase.WithArtifactStore(ws.store),
	)
	return tui.Workspace{
		Root:      ws.root,
		Simulator: ws.env.Simulator,
		Fixtures:  ws.fixtures,
		Runner:    runner,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().Resolve(strings.TrimSpace(workspaceFlag), wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `yaaade init`): %w", wd, err)
	}
	return root, nil
}

// resolveSettingsPath anchors a relative settings path at the workspace
// root. $VAR paths are left for the settings loader to expand.
func resolveSettingsPath(root, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "$") || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func underRoot(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func resolveFixturePath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("fixture is required (use --fixture or -f)")
	}

	// Paths are relative to the workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	fixturesDir := filepath.Join(ws.root, ws.cfg.Paths.FixturesDir)

	if hasYAMLExt(in) {
		p := filepath.Join(fixturesDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(fixturesDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	// As a last resort: match by the fixture's name field.
	p, err := ws.fixtures.Resolve(ws.root, in)
	if err != nil {
		return "", fmt.Errorf("fixture %q not found in %q: %w", in, fixturesDir, err)
	}
	return p, nil
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
