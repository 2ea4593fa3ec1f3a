package cli

import (
	"fmt"

	"github.com/alexanderramin/eventpilot/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import DIR",
		Short: "Import project JSON files into the database",
		Long:  "Import every <event_id>.json file of DIR into the SQLite store in a single transaction. Unreadable files are skipped and reported.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Transfer.ImportDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTransfer("Импортировано", res))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export DIR",
		Short: "Export every project as a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Transfer.ExportDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTransfer("Экспортировано", res))
			return nil
		},
	}
}
