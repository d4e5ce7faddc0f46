// Package cli implements the awesomemap command-line interface.
//
// # Commands
//
//   - view: open a window with a pannable, zoomable test page
//   - replay: run a JSON gesture script against a headless map and print
//     the recorded states
//
// All commands accept --config to load a YAML or TOML configuration and
// --verbose (-v) for debug logging.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/awesomemap"
)

// ctxKey is the type for context keys used in this package.
type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

// Execute builds the command tree and runs it with ctx.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "awesomemap",
		Short:        "Pan and zoom viewport engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := awesomemap.DefaultConfig()
			if configPath != "" {
				loaded, err := awesomemap.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			level := charmlog.InfoLevel
			if verbose || cfg.Debug {
				level = charmlog.DebugLevel
				cfg.Debug = true
			}
			ctx := context.WithValue(cmd.Context(), loggerKey, awesomemap.NewLogger(os.Stderr, level))
			ctx = context.WithValue(ctx, configKey, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (.yaml, .yml or .toml)")

	root.AddCommand(newViewCmd())
	root.AddCommand(newReplayCmd())
	return root
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey).(*charmlog.Logger); ok {
		return l
	}
	return charmlog.Default()
}

// configFromContext retrieves the configuration from ctx, or the defaults.
func configFromContext(ctx context.Context) awesomemap.Config {
	if c, ok := ctx.Value(configKey).(awesomemap.Config); ok {
		return c
	}
	return awesomemap.DefaultConfig()
}
