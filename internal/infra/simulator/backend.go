package simulator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/infra/procexec"
)

// backend is the process/result plumbing shared by all simulators. The
// concrete types add their dialect and command line.
type backend struct {
	kind    domain.SimulatorKind
	cfg     Config
	rawFile string
	args    func(netlist, raw string) []string
	env     []string

	results domain.Results
}

func (b *backend) Kind() domain.SimulatorKind { return b.kind }
func (b *backend) RunDir() string              { return b.cfg.RunDir }
func (b *backend) TempNetlist() string         { return tempNetlist }
func (b *backend) Results() domain.Results     { return b.results }

func (b *backend) log() *slog.Logger { return b.cfg.Logger }

// RunSimulation runs the simulator inside the run directory on the netlist
// the fixture wrote there. A non-zero exit is an execution error.
// The previous raw file is removed first so a run that writes none is
// reported as not_found by ReadResults.
func (b *backend) RunSimulation(ctx context.Context) error {
	rawPath := filepath.Join(b.cfg.RunDir, b.rawFile)
	if err := os.Remove(rawPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.OpError{Op: "simulator.run", Kind: domain.KindExecution, Path: rawPath, Err: err}
	}

	var stderr bytes.Buffer
	cmd := procexec.Command{
		Name:   b.cfg.Binary,
		Args:   b.args(tempNetlist, b.rawFile),
		Dir:    b.cfg.RunDir,
		Env:    b.env,
		Stderr: &stderr,
	}

	b.log().Info("simulator.run", "simulator", b.kind, "cmd", cmd.String(), "dir", cmd.Dir)
	if err := b.cfg.Runner.Run(ctx, cmd); err != nil {
		msg := lastLine(stderr.String())
		b.log().Error("simulator.run.failed", "simulator", b.kind, "err", err, "stderr", msg)
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &domain.OpError{
			Op:   "simulator.run",
			Kind: domain.KindExecution,
			Path: filepath.Join(b.cfg.RunDir, tempNetlist),
			Err:  err,
		}
	}
	return nil
}

// ReadResults parses the raw file the last run produced.
func (b *backend) ReadResults() error {
	res, err := ReadRawFile(filepath.Join(b.cfg.RunDir, b.rawFile))
	if err != nil {
		return err
	}
	b.results = res
	b.log().Info("simulator.results", "simulator", b.kind, "plot", res.Plotname, "traces", len(res.Traces), "points", res.Points())
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
