package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import projects from a CSV file",
		Long: `Import projects from a CSV file. Rows matched by project_id update the
existing record; others create new projects. The whole file is applied in one
transaction: any invalid row aborts the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportProjects(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new and %d updated projects", res.Created, res.Updated)
			if len(res.Domains) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " across %s", strings.Join(res.Domains, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all projects as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if out == "" {
				return app.Import.ExportProjects(ctx, cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := app.Import.ExportProjects(ctx, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported projects to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	return cmd
}
