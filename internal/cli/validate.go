package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yrrapt/yaaade/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var fixture string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a fixture (no xschem, no simulator)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace, nil)
			if err != nil {
				return err
			}

			fixturePath, err := resolveFixturePath(ws, fixture)
			if err != nil {
				return err
			}

			warnings, err := usecase.NewValidateFixture(ws.fixtures).Execute(cmd.Context(), fixturePath)
			if err != nil {
				return err
			}

			th := defaultTheme()
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintln(out, th.Warn.Render("warning: "+w))
			}
			fmt.Fprintln(out, th.Pass.Render("OK"))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&fixture, "fixture", "f", "", "Fixture name or path (required)")

	_ = c.MarkFlagRequired("fixture")
	return c
}
