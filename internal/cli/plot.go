package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yrrapt/yaaade/internal/infra/plotter"
	"github.com/yrrapt/yaaade/internal/infra/simulator"
)

func plotCmd() *cobra.Command {
	var workspace string
	var rawPath string
	var outPath string
	var title string
	var signals []string
	var logX bool

	c := &cobra.Command{
		Use:   "plot",
		Short: "Plot traces from a simulator raw file (defaults to the last run)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rawPath == "" {
				ws, err := loadWorkspace(workspace, nil)
				if err != nil {
					return err
				}
				rawPath = filepath.Join(underRoot(ws.root, ws.cfg.Paths.RunDir), simulator.DefaultRawFile)
			}

			res, err := simulator.ReadRawFile(rawPath)
			if err != nil {
				return err
			}

			opts := plotter.Options{
				Title:   title,
				Signals: signals,
				LogX:    logX || strings.EqualFold(res.Plotname, "AC Analysis"),
			}
			if err := plotter.Save(res, opts, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plot: %s\n", outPath)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&rawPath, "raw", "", "ASCII raw file (default: <run_dir>/netlist.raw)")
	c.Flags().StringVarP(&outPath, "out", "o", "", "Output image (.png|.svg|.pdf, required)")
	c.Flags().StringVar(&title, "title", "", "Plot title (default: the raw file plot name)")
	c.Flags().StringSliceVar(&signals, "signal", nil, "Trace to plot (repeatable; default all)")
	c.Flags().BoolVar(&logX, "logx", false, "Logarithmic scale axis")

	_ = c.MarkFlagRequired("out")
	return c
}
