// Package xschem generates subcircuit netlists from xschem schematics.
package xschem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/infra/procexec"
	"github.com/yrrapt/yaaade/internal/ports"
)

const (
	DefaultScriptPath = "/tmp/netlist.tcl"

	// netlisting twice pulls the standard symbol libraries into the output
	driverScript = "xschem netlist\nxschem netlist\n"
)

// Config controls where xschem runs and where its output is read from.
// Empty fields are filled from the environment when the netlister is built.
type Config struct {
	Binary      string
	ProjectRoot string // cwd for xschem, $PROJECT_ROOT
	Home        string // $HOME; output lands in $HOME/.xschem/simulations
	ScriptPath  string
	OutputDir   string // optional -o folder; relative paths resolve against the current directory

	// Strict turns a non-zero xschem exit into an error.
	Strict bool

	Runner procexec.Runner
	Logger *slog.Logger
}

type Netlister struct {
	cfg Config
}

var _ ports.SchematicNetlister = (*Netlister)(nil)

func New(cfg Config) *Netlister {
	if cfg.Binary == "" {
		cfg.Binary = "xschem"
	}
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = os.Getenv("PROJECT_ROOT")
	}
	if cfg.Home == "" {
		cfg.Home = os.Getenv("HOME")
	}
	if cfg.ScriptPath == "" {
		cfg.ScriptPath = DefaultScriptPath
	}
	if cfg.OutputDir != "" {
		if abs, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = abs
		}
	}
	if cfg.Runner == nil {
		cfg.Runner = procexec.OSRunner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Netlister{cfg: cfg}
}

// SchematicPath is where a cell's schematic lives relative to the project root.
func SchematicPath(library, cell string) string {
	return library + "/" + cell + "/schematic/" + cell + ".sch"
}

// OutputPath is where xschem writes the netlist of a cell: the -o folder
// when one is configured, $HOME/.xschem/simulations otherwise.
func (n *Netlister) OutputPath(cell string) string {
	if n.cfg.OutputDir != "" {
		return filepath.Join(n.cfg.OutputDir, cell+".spice")
	}
	return filepath.Join(n.cfg.Home, ".xschem", "simulations", cell+".spice")
}

// GenerateCell netlists library/cell as a top-level subcircuit and returns
// the generated text.
func (n *Netlister) GenerateCell(ctx context.Context, library, cell string) (string, error) {
	const op = "xschem.generate_cell"

	if library == "" || cell == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig,
			Err: fmt.Errorf("%w: library and cell are required", domain.ErrInvalidConfig)}
	}

	if err := os.WriteFile(n.cfg.ScriptPath, []byte(driverScript), 0o644); err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Path: n.cfg.ScriptPath, Err: err}
	}

	args := []string{"-n", "-q", "-x"}
	if n.cfg.OutputDir != "" {
		args = append(args, "-o", n.cfg.OutputDir)
	}
	args = append(args,
		"--script", n.cfg.ScriptPath,
		"--tcl", "set top_subckt 1",
		SchematicPath(library, cell),
	)

	var stderr bytes.Buffer
	cmd := procexec.Command{Name: n.cfg.Binary, Args: args, Dir: n.cfg.ProjectRoot, Stderr: &stderr}
	n.cfg.Logger.Info("xschem.netlist", "cmd", cmd.String(), "dir", cmd.Dir)

	if err := n.cfg.Runner.Run(ctx, cmd); err != nil {
		code, exited := procexec.ExitCode(err)
		if !exited || n.cfg.Strict || ctx.Err() != nil {
			return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Path: SchematicPath(library, cell),
				Err: err}
		}
		n.cfg.Logger.Warn("xschem.exit_status", "code", code, "cell", cell, "stderr", stderr.String())
	}

	out := n.OutputPath(cell)
	b, err := os.ReadFile(out)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: out,
				Err: fmt.Errorf("%w: netlist for cell %q", domain.ErrNotFound, cell)}
		}
		return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Path: out, Err: err}
	}
	return string(b), nil
}
