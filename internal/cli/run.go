package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/infra/plotter"
	"github.com/yrrapt/yaaade/internal/usecase"
)

func runCmd() *cobra.Command {
	var workspace string
	var fixture string
	var noSave bool
	var format string
	var plotPath string
	var signals []string

	c := &cobra.Command{
		Use:   "run",
		Short: "Build a fixture, simulate it and evaluate its checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace, cmd.Flags())
			if err != nil {
				return err
			}

			fixturePath, err := resolveFixturePath(ws, fixture)
			if err != nil {
				return err
			}

			opts := []usecase.RunOption{usecase.WithDefaultSettings(ws.defaultSettings)}
			if !noSave {
				opts = append(opts, usecase.WithArtifactStore(ws.store))
			}
			uc := usecase.NewRunFixture(ws.fixtures, ws.builder, opts...)

			outcome, err := uc.Execute(cmd.Context(), fixturePath, ws.env.Simulator)
			if err != nil {
				return err
			}

			if err := printRun(cmd.OutOrStdout(), outcome.Run, outcome.ArtifactID, format); err != nil {
				return err
			}

			if plotPath != "" && outcome.Run.Error == nil {
				err := plotter.Save(outcome.Results, plotter.Options{
					Title:   outcome.Run.FixtureName,
					Signals: signals,
					LogX:    strings.EqualFold(outcome.Run.Summary.Analysis, "AC Analysis"),
				}, plotPath)
				if err != nil {
					return err
				}
			}

			if outcome.Run.Failed() {
				if outcome.Run.Error != nil {
					return fmt.Errorf("run failed: %s", outcome.Run.Error.Message)
				}
				return fmt.Errorf("run failed (%d failed check(s))", outcome.Run.FailedChecks())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&fixture, "fixture", "f", "", "Fixture name or path (required)")
	c.Flags().String("simulator", "", "Simulator backend: ngspice|xyce|spectre (overrides SIMULATOR)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&plotPath, "plot", "", "Also plot the traces to this file (.png|.svg|.pdf)")
	c.Flags().StringSliceVar(&signals, "signal", nil, "Trace to plot (repeatable; default all)")

	_ = c.MarkFlagRequired("fixture")
	return c
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	}
	return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
}

func printRun(w io.Writer, run domain.RunResult, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return checkFormat(format)
	}
}

func printPrettyRun(w io.Writer, run domain.RunResult, runID string) {
	th := defaultTheme()

	total := run.EndedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.EndedAt.IsZero() {
		total = 0
	}

	status := th.Pass.Render("PASS")
	if run.Failed() {
		status = th.Fail.Render("FAIL")
	}

	row := func(label, value string) string {
		return th.Label.Render(label) + value
	}
	lines := []string{
		th.Title.Render(run.FixtureName) + "  " + status,
		row("Simulator", string(run.Simulator)),
	}
	if run.Corner != "" {
		lines = append(lines, row("Corner", run.Corner))
	}
	lines = append(lines,
		row("Started", run.StartedAt.Format(time.RFC3339)),
		row("Duration", total.String()),
	)
	if run.NetlistPath != "" {
		lines = append(lines, row("Netlist", run.NetlistPath))
	}
	if runID != "" {
		lines = append(lines, row("Run ID", runID))
	}
	fmt.Fprintln(w, th.Card.Render(strings.Join(lines, "\n")))
	fmt.Fprintln(w)

	if run.Error != nil {
		fmt.Fprintf(w, "%s %s (%s)\n\n", th.Fail.Render("error:"), run.Error.Message, run.Error.Kind)
	}

	if s := run.Summary; s != nil {
		fmt.Fprintf(w, "%s %s, %d point(s)\n", th.Title.Render("Results:"), s.Analysis, s.Points)
		for _, name := range sortedKeys(s.Final) {
			fmt.Fprintf(w, "  %-16s final=%-12.6g min=%-12.6g max=%.6g\n", name, s.Final[name], s.Min[name], s.Max[name])
		}
		fmt.Fprintln(w)
	}

	if len(run.Checks) > 0 {
		fmt.Fprintf(w, "%s %d pass / %d fail\n", th.Title.Render("Checks:"), len(run.Checks)-run.FailedChecks(), run.FailedChecks())
		for _, c := range run.Checks {
			mark := th.Pass.Render("✓")
			if !c.Passed {
				mark = th.Fail.Render("✗")
			}
			fmt.Fprintf(w, "  %s %s: %s\n", mark, c.Name, th.Faint.Render(c.Message))
		}
		fmt.Fprintln(w)
	}
}

func sortedKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
