package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yrrapt/yaaade/internal/usecase"
)

func netlistCmd() *cobra.Command {
	var workspace string
	var fixture string
	var stdout bool

	c := &cobra.Command{
		Use:   "netlist",
		Short: "Build a fixture and write its netlist to the run directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, cmd.Flags())
			if err != nil {
				return err
			}

			fixturePath, err := resolveFixturePath(ws, fixture)
			if err != nil {
				return err
			}

			uc := usecase.NewWriteNetlist(ws.fixtures, ws.builder, ws.defaultSettings)
			out, err := uc.Execute(cmd.Context(), fixturePath, ws.env.Simulator, !stdout)
			if err != nil {
				return err
			}

			if stdout {
				fmt.Fprint(cmd.OutOrStdout(), out.Text)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Netlist (%s): %s\n", ws.env.Simulator, out.Path)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&fixture, "fixture", "f", "", "Fixture name or path (required)")
	c.Flags().String("simulator", "", "Simulator backend: ngspice|xyce|spectre (overrides SIMULATOR)")
	c.Flags().BoolVar(&stdout, "stdout", false, "Print the netlist instead of writing it")

	_ = c.MarkFlagRequired("fixture")
	return c
}
