package simulator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/infra/procexec"
	"github.com/yrrapt/yaaade/internal/ports"
)

// recordingRunner captures commands and copies a canned raw file into the
// run directory, the way a real simulator would leave its output.
type recordingRunner struct {
	cmds    []procexec.Command
	rawFrom string
	err     error
}

func (r *recordingRunner) Run(_ context.Context, c procexec.Command) error {
	r.cmds = append(r.cmds, c)
	if r.err != nil {
		if c.Stderr != nil {
			_, _ = c.Stderr.Write([]byte("warning\nfatal: netlist error\n"))
		}
		return r.err
	}
	if r.rawFrom != "" {
		b, err := os.ReadFile(r.rawFrom)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(c.Dir, DefaultRawFile), b, 0o644)
	}
	return nil
}

func TestRegistry_AllBackendsRegistered(t *testing.T) {
	require.Equal(t,
		[]domain.SimulatorKind{domain.SimulatorNgspice, domain.SimulatorSpectre, domain.SimulatorXyce},
		Kinds())

	for _, k := range Kinds() {
		b, err := New(k, Config{})
		require.NoError(t, err)
		require.Equal(t, k, b.Kind())
		require.Equal(t, "_rundir", b.RunDir())
		require.Equal(t, "netlist.spice", b.TempNetlist())
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	_, err := New("hspice", Config{})
	require.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
}

func TestRegistry_RegisterCustomBackend(t *testing.T) {
	const kind domain.SimulatorKind = "test-only"
	Register(kind, func(cfg Config) ports.SimulatorBackend { return NewNgspice(cfg) })
	t.Cleanup(func() {
		mu.Lock()
		delete(factories, kind)
		mu.Unlock()
	})

	b, err := New(kind, Config{RunDir: "x"})
	require.NoError(t, err)
	require.Equal(t, "x", b.RunDir())
}

func TestCommandLines(t *testing.T) {
	cases := []struct {
		kind   domain.SimulatorKind
		binary string
		args   []string
		env    []string
	}{
		{domain.SimulatorNgspice, "ngspice", []string{"-b", "-r", "netlist.raw", "-o", "ngspice.log", "netlist.spice"}, []string{"SPICE_ASCIIRAWFILE=1"}},
		{domain.SimulatorXyce, "Xyce", []string{"-r", "netlist.raw", "-a", "-l", "xyce.log", "netlist.spice"}, nil},
		{domain.SimulatorSpectre, "spectre", []string{"-format", "nutascii", "-raw", "netlist.raw", "=log", "spectre.log", "netlist.spice"}, nil},
	}
	for _, c := range cases {
		t.Run(string(c.kind), func(t *testing.T) {
			runner := &recordingRunner{}
			dir := t.TempDir()
			b, err := New(c.kind, Config{RunDir: dir, Runner: runner})
			require.NoError(t, err)

			require.NoError(t, b.RunSimulation(context.Background()))
			require.Len(t, runner.cmds, 1)
			cmd := runner.cmds[0]
			require.Equal(t, c.binary, cmd.Name)
			require.Equal(t, c.args, cmd.Args)
			require.Equal(t, dir, cmd.Dir)
			require.Equal(t, c.env, cmd.Env)
		})
	}
}

func TestRunSimulation_ExitFailure(t *testing.T) {
	runner := &recordingRunner{err: &procexec.ExitError{Command: "ngspice", Code: 1}}
	b := NewNgspice(Config{RunDir: t.TempDir(), Runner: runner})

	err := b.RunSimulation(context.Background())
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindExecution))
	require.Contains(t, err.Error(), "fatal: netlist error")

	code, ok := procexec.ExitCode(err)
	require.True(t, ok)
	require.Equal(t, 1, code)
}

func TestRunAndReadResults(t *testing.T) {
	src, err := filepath.Abs(filepath.Join("testdata", "tran.raw"))
	require.NoError(t, err)

	runner := &recordingRunner{rawFrom: src}
	b := NewXyce(Config{RunDir: t.TempDir(), Runner: runner})

	require.NoError(t, b.RunSimulation(context.Background()))
	require.NoError(t, b.ReadResults())
	require.Equal(t, 3, b.Results().Points())
}

func TestRunSimulation_DropsPreviousRawFile(t *testing.T) {
	src, err := filepath.Abs(filepath.Join("testdata", "tran.raw"))
	require.NoError(t, err)
	old, err := os.ReadFile(src)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultRawFile), old, 0o644))

	// exits cleanly without writing a raw file
	b := NewNgspice(Config{RunDir: dir, Runner: &recordingRunner{}})
	require.NoError(t, b.RunSimulation(context.Background()))

	err = b.ReadResults()
	require.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
	require.Empty(t, b.Results().Traces)
}

func TestReadResults_NoRawFile(t *testing.T) {
	b := NewNgspice(Config{RunDir: t.TempDir()})
	err := b.ReadResults()
	require.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestSpectreDialect(t *testing.T) {
	b := NewSpectre(Config{})
	require.Equal(t, "simulator lang=spice", b.Preamble())
	require.Equal(t, "", b.Trailer())
	require.Equal(t, `.include "/pdk/models.lib"`, b.Include("/pdk/models.lib", ""))

	delayed := domain.Transient(1e-9, 1e-6)
	delayed.Start = 1e-7

	cases := []struct {
		sim  *domain.Simulation
		want string
	}{
		{domain.Transient(1e-9, 1e-6), "simulator lang=spectre\ntran1 tran step=1e-09 stop=1e-06"},
		{delayed, "simulator lang=spectre\ntran1 tran step=1e-09 stop=1e-06 start=1e-07"},
		{domain.ACSweep("dec", 10, 1, 1e9), "simulator lang=spectre\nac1 ac start=1 stop=1e+09 dec=10"},
		{domain.ACSweep("DEC", 10, 1, 1e6), "simulator lang=spectre\nac1 ac start=1 stop=1e+06 dec=10"},
		{domain.DCSweep("vin", 0, 1.8, 0.1), "simulator lang=spectre\ndc1 dc dev=vin param=dc start=0 stop=1.8 step=0.1"},
		{domain.OperatingPoint(), "simulator lang=spectre\nop1 dc"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, b.Analysis(*c.sim))
	}
}

func TestNgspiceDialectIsSpice(t *testing.T) {
	b := NewNgspice(Config{})
	require.Equal(t, ".end", b.Trailer())
	require.Equal(t, ".tran 1e-09 1e-06", b.Analysis(*domain.Transient(1e-9, 1e-6)))
}
