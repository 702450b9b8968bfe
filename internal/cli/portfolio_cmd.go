package cli

import (
	"context"
	"fmt"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPortfolioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show aggregate metrics for the selected portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := app.Portfolio.Aggregate(ctx)
			if err != nil {
				return err
			}
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			codes, err := domainCodeMap(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPortfolioMetrics(m, codes, s.Currency))
			return nil
		},
	}
}
