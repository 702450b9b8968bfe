package cli

import (
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Settings   service.SettingsService
	Domains    service.DomainService
	Projects   service.ProjectService
	Portfolio  service.PortfolioService
	Validation service.ValidationService
	Approvals  service.ApprovalService
	Import     service.ImportService

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands fall back to flags-only when it is nil or false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "capalloc" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "capalloc",
		Short:         "Capital allocation planner for project portfolios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newConfigCmd(app),
		newDomainCmd(app),
		newProjectCmd(app),
		newPortfolioCmd(app),
		newValidateCmd(app),
		newApproveCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
