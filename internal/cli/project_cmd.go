package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage candidate projects and the portfolio selection",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectFlowsCmd(app),
		newProjectSelectCmd(app),
		newProjectExcludeCmd(app),
		newProjectRankCmd(app),
		newProjectAllocateCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func printProject(cmd *cobra.Command, app *App, p *domain.Project) error {
	ctx := context.Background()
	s, err := app.Settings.Get(ctx)
	if err != nil {
		return err
	}
	codes, err := domainCodeMap(ctx, app)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, codes[p.DomainID], s.Currency))
	return nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		projectID, name, category string
		domainArg                 string
		capex, opex               float64
		revenue, savings          float64
		risk, fit                 float64
		businessUnit, geography   string
		sponsor, startQuarter     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a candidate project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// No --id on a terminal means the user wants the form.
			if !cmd.Flags().Changed("id") && app.interactive() {
				var v projectAddValues
				form, err := projectAddForm(ctx, app, &v)
				if err != nil {
					return err
				}
				if err := form.Run(); err != nil {
					return err
				}
				projectID = v.ProjectID
				name = v.Name
				domainArg = v.DomainID
				if v.Capex != "" {
					capex, _ = strconv.ParseFloat(v.Capex, 64)
				}
				if v.Risk != "" {
					risk, _ = strconv.ParseFloat(v.Risk, 64)
				}
			}

			d, err := resolveDomain(ctx, app, domainArg)
			if err != nil {
				return err
			}

			p := &domain.Project{
				ProjectID:        strings.ToUpper(projectID),
				Name:             name,
				Category:         category,
				DomainID:         d.ID,
				Capex:            capex,
				Opex:             opex,
				RevenuePotential: revenue,
				SavingsPotential: savings,
				RiskScore:        risk,
				StrategicFit:     fit,
				BusinessUnit:     businessUnit,
				Geography:        geography,
				Sponsor:          sponsor,
				StartQuarter:     startQuarter,
			}
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s) in %s\n", p.Name, p.ProjectID, d.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "id", "", "Project ID (e.g. CAP-001)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&category, "category", "", "Free-form category")
	cmd.Flags().StringVar(&domainArg, "domain", "", "Domain code")
	cmd.Flags().Float64Var(&capex, "capex", 0, "Capital expenditure")
	cmd.Flags().Float64Var(&opex, "opex", 0, "Annual operating cost")
	cmd.Flags().Float64Var(&revenue, "revenue", 0, "Annual revenue potential")
	cmd.Flags().Float64Var(&savings, "savings", 0, "Annual savings potential")
	cmd.Flags().Float64Var(&risk, "risk", 0, "Risk score 1-10")
	cmd.Flags().Float64Var(&fit, "fit", 0, "Strategic fit 1-10")
	cmd.Flags().StringVar(&businessUnit, "business-unit", "", "Owning business unit")
	cmd.Flags().StringVar(&geography, "geography", "", "Geography")
	cmd.Flags().StringVar(&sponsor, "sponsor", "", "Executive sponsor")
	cmd.Flags().StringVar(&startQuarter, "start-quarter", "", `First spend quarter, e.g. "Q1 2026"`)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var domainArg string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				projects []domain.Project
				err      error
			)
			if domainArg != "" {
				d, rerr := resolveDomain(ctx, app, domainArg)
				if rerr != nil {
					return rerr
				}
				projects, err = app.Projects.ListByDomain(ctx, d.ID)
			} else {
				projects, err = app.Projects.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			codes, err := domainCodeMap(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, codes, s.Currency))
			return nil
		},
	}
	cmd.Flags().StringVar(&domainArg, "domain", "", "Only projects in this domain")
	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show one project in full, including cash flows and allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			return printProject(cmd, app, p)
		},
	}
}

func newProjectFlowsCmd(app *App) *cobra.Command {
	var amounts string
	cmd := &cobra.Command{
		Use:   "flows ID",
		Short: "Replace a project's cash flow series and recompute its metrics",
		Long: `Replace a project's cash flow series and recompute NPV, IRR, MIRR and
payback. Amounts are comma-separated, one per period starting at period 0
(the investment period, usually negative).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			flows, err := parseCashFlows(amounts)
			if err != nil {
				return err
			}
			p, err = app.Projects.SetCashFlows(ctx, p.ID, flows)
			if err != nil {
				return err
			}
			return printProject(cmd, app, p)
		},
	}
	cmd.Flags().StringVar(&amounts, "amounts", "", `Comma-separated amounts, e.g. "-1000,300,400,500"`)
	_ = cmd.MarkFlagRequired("amounts")
	return cmd
}

func parseCashFlows(s string) ([]domain.CashFlow, error) {
	parts := strings.Split(s, ",")
	flows := make([]domain.CashFlow, 0, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cash flow amount %q", strings.TrimSpace(part))
		}
		flows = append(flows, domain.CashFlow{Period: i, Amount: v})
	}
	return flows, nil
}

func newProjectSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select ID",
		Short: "Add a project to the portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Projects.Select(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s at rank %d\n", res.Project.DisplayID(), res.Project.PortfolioRank)
			if !res.WithinBudget {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render("Warning: selection exceeds the domain budget"))
			}
			return nil
		},
	}
}

func newProjectExcludeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exclude ID",
		Short: "Drop a project from consideration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Exclude(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Excluded %s\n", p.DisplayID())
			return nil
		},
	}
}

func newProjectRankCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rank ID POSITION",
		Short: "Move a selected project to a position in its domain's ranking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			rank, err := strconv.Atoi(args[1])
			if err != nil || rank < 1 {
				return fmt.Errorf("invalid rank %q: must be a positive integer", args[1])
			}
			if err := app.Projects.SetRank(ctx, p.ID, rank); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to rank %d\n", p.DisplayID(), rank)
			return nil
		},
	}
}

func newProjectAllocateCmd(app *App) *cobra.Command {
	var (
		pattern  string
		quarters int
	)

	cmd := &cobra.Command{
		Use:   "allocate ID",
		Short: "Spread a project's CAPEX across quarters",
		Long: `Spread a project's CAPEX across consecutive quarters starting at the
project's start quarter (or the plan's, if the project has none). Patterns:
even_spread, front_loaded, back_loaded, s_curve.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			pat, err := allocation.ParsePattern(pattern)
			if err != nil {
				return err
			}
			p, err = app.Projects.Allocate(ctx, p.ID, pat, quarters)
			if err != nil {
				return err
			}
			return printProject(cmd, app, p)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", string(allocation.EvenSpread), "Allocation pattern")
	cmd.Flags().IntVar(&quarters, "quarters", 4, "Number of quarters")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", p.DisplayID())
			return nil
		},
	}
}
