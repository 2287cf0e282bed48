// Package plotter draws simulator traces against their scale vector.
package plotter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	gonum "gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/yrrapt/yaaade/internal/domain"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

type Options struct {
	Title string
	// Signals selects traces by name. Empty means every trace.
	Signals []string
	// LogX uses a logarithmic scale axis (AC sweeps).
	LogX bool

	Width  vg.Length
	Height vg.Length
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Plot builds one line per selected trace.
func Plot(res domain.Results, opts Options) (*plot.Plot, error) {
	traces, err := selectTraces(res, opts.Signals)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = res.Plotname
	}
	p.X.Label.Text = axisLabel(res.Scale)
	p.Add(gonum.NewGrid())
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for i, t := range traces {
		xys, err := points(res.Scale, t, opts.LogX)
		if err != nil {
			return nil, err
		}
		line, err := gonum.NewLine(xys)
		if err != nil {
			return nil, &domain.OpError{Op: "plotter.plot", Kind: domain.KindInvalidConfig, Err: err}
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(t.Name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// Save writes the plot to path; the format follows the extension
// (png, svg or pdf).
func Save(res domain.Results, opts Options, path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{Op: "plotter.save", Kind: domain.KindExecution, Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{Op: "plotter.save", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if err := Write(f, res, opts, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &domain.OpError{Op: "plotter.save", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

// Write renders the plot in the given format to w.
func Write(w io.Writer, res domain.Results, opts Options, format string) error {
	p, err := Plot(res, opts)
	if err != nil {
		return err
	}
	width, height := opts.size()
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return &domain.OpError{Op: "plotter.write", Kind: domain.KindInvalidConfig, Err: err}
	}
	if _, err := wt.WriteTo(w); err != nil {
		return &domain.OpError{Op: "plotter.write", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

func formatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "svg", "pdf":
		return ext, nil
	}
	return "", &domain.OpError{
		Op:   "plotter.save",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%w: unsupported plot format %q (expected png|svg|pdf)", domain.ErrInvalidConfig, ext),
	}
}

func selectTraces(res domain.Results, names []string) ([]domain.Trace, error) {
	if len(names) == 0 {
		if len(res.Traces) == 0 {
			return nil, &domain.OpError{
				Op:   "plotter.plot",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("%w: results hold no traces", domain.ErrInvalidConfig),
			}
		}
		return res.Traces, nil
	}
	out := make([]domain.Trace, 0, len(names))
	for _, n := range names {
		t, ok := res.Trace(n)
		if !ok {
			return nil, &domain.OpError{
				Op:   "plotter.plot",
				Kind: domain.KindNotFound,
				Err:  fmt.Errorf("%w: signal %q", domain.ErrNotFound, n),
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func points(scale, t domain.Trace, logX bool) (gonum.XYs, error) {
	if len(scale.Values) != len(t.Values) {
		return nil, &domain.OpError{
			Op:   "plotter.plot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("trace " + t.Name + " and scale " + scale.Name + " differ in length"),
		}
	}
	xys := make(gonum.XYs, 0, len(t.Values))
	for i, y := range t.Values {
		x := scale.Values[i]
		// log axes cannot place the DC point
		if logX && x <= 0 {
			continue
		}
		xys = append(xys, gonum.XY{X: x, Y: y})
	}
	return xys, nil
}

func axisLabel(t domain.Trace) string {
	if t.Unit == "" {
		return t.Name
	}
	return t.Name + " (" + t.Unit + ")"
}
