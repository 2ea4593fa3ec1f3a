package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/cli/formatter"
	"github.com/alexanderramin/eventpilot/internal/service"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "edit ID INSTRUCTION...",
		Short: "Apply a plain-language edit to a project",
		Example: `  eventpilot edit 3f2a 'добавь подрядчика: типография «Иванов», срок 25.11'
  eventpilot edit 3f2a 'измени тайминг выхода ведущего на 21:00' --yes`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Edits.Apply(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			res := outcome.Result
			if !res.RequiresConfirmation {
				fmt.Fprintln(out, res.Reply)
				if res.Updated {
					fmt.Fprintln(out, formatter.Dim(service.UpdatedText(res.Summary)))
				}
				return nil
			}

			question, _, _ := strings.Cut(res.Reply, "\n")
			if yes || !app.interactive() {
				fmt.Fprintln(out, question)
			}
			if !yes {
				if !app.interactive() {
					app.Edits.Cancel(ctx, id, res.Pending)
					fmt.Fprintln(out, formatter.StyleYellow.Render("Not applied: re-run with --yes to confirm."))
					return nil
				}
				ok, err := app.confirm(question)
				if err != nil {
					return err
				}
				if !ok {
					app.Edits.Cancel(ctx, id, res.Pending)
					fmt.Fprintln(out, service.TextCancelled)
					return nil
				}
			}

			summary, err := app.Edits.Confirm(ctx, id, res.Pending)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render(service.UpdatedText(summary)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply changes that need confirmation without asking")
	return cmd
}
