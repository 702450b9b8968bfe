package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/spf13/cobra"
)

func newApproveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Track sign-offs across the approval matrix",
	}
	cmd.AddCommand(newApproveListCmd(app), newApproveSetCmd(app))
	return cmd
}

func newApproveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the approval matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			domains, err := app.Domains.List(ctx, true)
			if err != nil {
				return err
			}
			if len(domains) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No domains found.")
				return nil
			}
			records, err := app.Approvals.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatApprovalMatrix(domains, records))
			return nil
		},
	}
}

func parseApprovalRole(s string) (domain.ApprovalRole, error) {
	role := domain.ApprovalRole(strings.ToLower(s))
	for _, r := range domain.AllApprovalRoles {
		if role == r {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q: must be domain_owner, finance, risk or executive", s)
}

func newApproveSetCmd(app *App) *cobra.Command {
	var (
		comments string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "set CODE ROLE STATE",
		Short: "Record a sign-off decision for a domain",
		Long: `Record a sign-off decision for one (domain, role) cell of the matrix.
Roles: domain_owner, finance, risk, executive.
States: not_started, pending, approved, rejected.

Setting a cell to approved first validates the portfolio; critical findings
block the approval unless --force is given.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := resolveDomain(ctx, app, args[0])
			if err != nil {
				return err
			}
			role, err := parseApprovalRole(args[1])
			if err != nil {
				return err
			}
			state := domain.ApprovalState(strings.ToLower(args[2]))

			rec, err := app.Approvals.Set(ctx, d.ID, role, state, comments, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s / %s is now %s\n",
				d.Code, rec.Role, formatter.StateStyle(rec.State).Render(string(rec.State)))
			approved, total, err := app.Approvals.Progress(ctx, d.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s approvals: %d/%d\n", d.Code, approved, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&comments, "comments", "", "Reviewer comments")
	cmd.Flags().BoolVar(&force, "force", false, "Approve even with critical validation findings")

	return cmd
}
