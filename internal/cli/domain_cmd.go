package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newDomainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Manage business domains and their budget shares",
	}
	cmd.AddCommand(
		newDomainAddCmd(app),
		newDomainListCmd(app),
		newDomainUpdateCmd(app),
		newDomainEnableCmd(app, true),
		newDomainEnableCmd(app, false),
		newDomainBalanceCmd(app),
		newDomainShareCmd(app),
		newDomainRemoveCmd(app),
	)
	return cmd
}

func printDomains(cmd *cobra.Command, app *App, domains []domain.BusinessDomain) error {
	s, err := app.Settings.Get(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDomainList(domains, s.Currency, s.BudgetMode))
	return nil
}

func newDomainAddCmd(app *App) *cobra.Command {
	var (
		code, name, tolerance string
		percent, score        float64
		minIRR, maxPayback    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a business domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &domain.BusinessDomain{
				Code:           strings.ToUpper(code),
				Name:           name,
				BudgetPercent:  percent,
				RiskTolerance:  domain.RiskLevel(tolerance),
				MinIRR:         minIRR,
				MaxPayback:     maxPayback,
				StrategicScore: score,
			}
			if err := app.Domains.Create(context.Background(), d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created domain %s (%s) at %.1f%%\n", d.Name, d.Code, d.BudgetPercent)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Short code (2-6 uppercase letters, e.g. MFG)")
	cmd.Flags().StringVar(&name, "name", "", "Domain name")
	cmd.Flags().Float64Var(&percent, "percent", 0, "Budget share in percent")
	cmd.Flags().StringVar(&tolerance, "tolerance", "medium", "Risk tolerance: low, medium or high")
	cmd.Flags().Float64Var(&minIRR, "min-irr", 0, "Minimum acceptable project IRR in percent")
	cmd.Flags().Float64Var(&maxPayback, "max-payback", 0, "Maximum acceptable payback in years")
	cmd.Flags().Float64Var(&score, "score", 0, "Strategic score 1-10")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDomainListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List business domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := app.Domains.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(domains) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No domains found.")
				return nil
			}
			return printDomains(cmd, app, domains)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive domains")
	return cmd
}

func newDomainUpdateCmd(app *App) *cobra.Command {
	var (
		name, tolerance    string
		minIRR, maxPayback float64
		score              float64
	)

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Update a domain's name or thresholds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDomain(ctx, app, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				d.Name = name
			}
			if cmd.Flags().Changed("tolerance") {
				d.RiskTolerance = domain.RiskLevel(tolerance)
			}
			if cmd.Flags().Changed("min-irr") {
				d.MinIRR = minIRR
			}
			if cmd.Flags().Changed("max-payback") {
				d.MaxPayback = maxPayback
			}
			if cmd.Flags().Changed("score") {
				d.StrategicScore = score
			}
			if err := app.Domains.Update(ctx, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated domain %s\n", d.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Domain name")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "Risk tolerance: low, medium or high")
	cmd.Flags().Float64Var(&minIRR, "min-irr", 0, "Minimum acceptable project IRR in percent")
	cmd.Flags().Float64Var(&maxPayback, "max-payback", 0, "Maximum acceptable payback in years")
	cmd.Flags().Float64Var(&score, "score", 0, "Strategic score 1-10")

	return cmd
}

func newDomainEnableCmd(app *App, enable bool) *cobra.Command {
	use, short := "enable CODE", "Bring a domain back into the plan"
	if !enable {
		use, short = "disable CODE", "Take a domain out of the plan"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDomain(ctx, app, args[0])
			if err != nil {
				return err
			}
			domains, err := app.Domains.SetActive(ctx, d.ID, enable)
			if err != nil {
				return err
			}
			return printDomains(cmd, app, domains)
		},
	}
}

func newDomainBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Give every active domain an equal budget share",
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := app.Domains.BalanceEqual(context.Background())
			if err != nil {
				return err
			}
			return printDomains(cmd, app, domains)
		},
	}
}

func newDomainShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share CODE PERCENT",
		Short: "Pin a domain's share and redistribute the rest proportionally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDomain(ctx, app, args[0])
			if err != nil {
				return err
			}
			percent, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid percent %q", args[1])
			}
			domains, err := app.Domains.SetBudgetPercent(ctx, d.ID, percent)
			if err != nil {
				return err
			}
			return printDomains(cmd, app, domains)
		},
	}
}

func newDomainRemoveCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "remove CODE",
		Short: "Delete a domain and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDomain(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				projects, err := app.Projects.ListByDomain(ctx, d.ID)
				if err != nil {
					return err
				}
				if len(projects) > 0 {
					return fmt.Errorf("domain %s has %d projects; use --force to delete them too", d.Code, len(projects))
				}
			}
			if err := app.Domains.Delete(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed domain %s\n", d.Code)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the domain still has projects")
	return cmd
}
