package cli

import (
	"context"
	"fmt"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change plan settings",
	}
	cmd.AddCommand(newConfigShowCmd(app), newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show plan settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var (
		totalBudget  float64
		discountRate float64
		currency     string
		mode         string
		startQuarter string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change plan settings",
		Long: `Change plan settings. Only the flags you pass are changed.
Changing the total budget recomputes every domain's dollar budget; changing
the discount rate recomputes every project's financial metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("total-budget") {
				s.TotalBudget = totalBudget
			}
			if cmd.Flags().Changed("discount-rate") {
				s.DiscountRate = &discountRate
			}
			if cmd.Flags().Changed("currency") {
				s.Currency = currency
			}
			if cmd.Flags().Changed("mode") {
				s.BudgetMode = domain.BudgetMode(mode)
			}
			if cmd.Flags().Changed("start-quarter") {
				if _, err := allocation.ParseQuarter(startQuarter); err != nil {
					return err
				}
				s.StartQuarter = startQuarter
			}

			if err := app.Settings.Update(ctx, s); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}

	cmd.Flags().Float64Var(&totalBudget, "total-budget", 0, "Total capital budget")
	cmd.Flags().Float64Var(&discountRate, "discount-rate", 0, "Discount rate in percent, e.g. 10 for 10%")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 display currency, e.g. USD")
	cmd.Flags().StringVar(&mode, "mode", "", "Budget mode: percent or dollar")
	cmd.Flags().StringVar(&startQuarter, "start-quarter", "", `First planning quarter, e.g. "Q1 2026"`)

	return cmd
}
