// Package cli implements the goodfirst command-line interface.
//
// The commands are:
//   - report: Print good first issues for every dependency of a manifest
//   - browse: The same report as an interactive list
//   - serve: Run the HTTP API
//   - cache: Manage the response cache
//   - completion: Generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every registry and GitHub request.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/goodfirst/pkg/buildinfo"
	"github.com/matzehuels/goodfirst/pkg/config"
)

// appName is the application name used for display.
const appName = "goodfirst"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // report output when --output is not set

	configPath string
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "goodfirst finds beginner-friendly issues in your dependencies",
		Long: `goodfirst reads a package.json, looks up the GitHub repository of every
dependency on the npm registry, and lists its open "good first issue" issues.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/goodfirst/config.toml)")

	root.AddCommand(c.reportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies the flags the user set.
func (c *CLI) loadConfig(cmd *cobra.Command, f *runFlags) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f != nil {
		f.apply(cmd, &cfg)
	}
	return cfg, cfg.Validate()
}
