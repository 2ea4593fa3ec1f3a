package cli

import (
	"fmt"

	"github.com/alexanderramin/eventpilot/internal/config"
	"github.com/alexanderramin/eventpilot/internal/service"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Command annotations controlling how much of the App a command needs.
const (
	annotationNoConfig = "eventpilot/no-config"
	annotationNoStore  = "eventpilot/no-store"
)

// App holds references to all service interfaces used by CLI commands.
// When Wire is set, the root command calls it after the configuration is
// resolved and before any command that needs the store runs.
type App struct {
	Projects     service.ProjectService
	Edits        service.EditService
	Stats        service.StatsService
	Transfer     service.TransferService
	Conversation *service.Conversation

	// Home is the user's home directory; the config file and default
	// store live under it.
	Home   string
	Config *config.Config
	Wire   func(cfg *config.Config) (cleanup func() error, err error)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(question string) (bool, error)

	cleanup func() error
}

// Close releases whatever Wire opened.
func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(question string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(question)
	}
	return huhConfirm(question)
}

// NewRootCmd creates the top-level "eventpilot" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configFile, backend, store, logLevel string

	root := &cobra.Command{
		Use:           "eventpilot",
		Short:         "Event planning assistant",
		Long:          "EventPilot turns free-form event descriptions into structured projects and keeps them up to date from plain-language edits.\n\nRun without arguments in a terminal to start the chat.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoConfig] != "" {
				return nil
			}
			v := config.New(app.Home)
			flags := cmd.Root().PersistentFlags()
			for key, name := range map[string]string{
				config.KeyStoreBackend: "backend",
				config.KeyStorePath:    "store",
				config.KeyLogLevel:     "log-level",
			} {
				if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
					return fmt.Errorf("binding --%s: %w", name, err)
				}
			}
			cfg, err := config.Load(v, configFile, app.Home)
			if err != nil {
				return err
			}
			app.Config = cfg

			if cmd.Annotations[annotationNoStore] != "" || app.Wire == nil {
				return nil
			}
			cleanup, err := app.Wire(cfg)
			if err != nil {
				return err
			}
			app.cleanup = cleanup
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runChat(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default ~/.eventpilot/config.yaml)")
	pf.StringVar(&backend, "backend", "", "Store backend: sqlite or file")
	pf.StringVar(&store, "store", "", "Database file or projects directory")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newNewCmd(app),
		newProjectsCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newStatsCmd(app),
		newChatCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newConfigCmd(app),
	)
	return root
}
