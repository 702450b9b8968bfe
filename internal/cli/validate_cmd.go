package cli

import (
	"context"
	"fmt"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run portfolio validation and show the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Validation.Run(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationReport(report))
			return nil
		},
	}
}
