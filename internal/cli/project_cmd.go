package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/eventpilot/internal/cli/formatter"
	"github.com/alexanderramin/eventpilot/internal/service"
	"github.com/spf13/cobra"
)

// resolveProjectID accepts a full event ID or an unambiguous prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.ListRecent(ctx, 0)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range projects {
		if p.EventID == input {
			return p.EventID, nil
		}
		if strings.HasPrefix(p.EventID, input) {
			matches = append(matches, p.EventID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new [DESCRIPTION...]",
		Short: "Create a project from a free-form event description",
		Long:  "Create a project from a free-form event description. Reads the description from stdin when no arguments are given.",
		Example: `  eventpilot new 'Корпоратив «Итоги года» 25 декабря в 19:00 в ресторане «Север» для сотрудников'
  cat brief.txt | eventpilot new`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading description: %w", err)
				}
				text = string(data)
			}

			p, err := app.Projects.CreateFromText(cmd.Context(), text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.StyleGreen.Render(service.CreationSummary(p)))
			fmt.Fprintln(out, formatter.Dim("ID: "+p.EventID))
			return nil
		},
	}
}

func newProjectsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "List recent projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") && app.Config != nil {
				limit = app.Config.Projects.ListLimit
			}
			projects, err := app.Projects.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultListLimit, "Maximum number of projects (0 for all)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Get(ctx, id)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored document")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project count and nearest deadlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Stats.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(st, time.Now()))
			return nil
		},
	}
}
