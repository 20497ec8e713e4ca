package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/goodfirst/pkg/cache"
	"github.com/matzehuels/goodfirst/pkg/config"
	"github.com/matzehuels/goodfirst/pkg/observability"
	"github.com/matzehuels/goodfirst/pkg/pipeline"
	"github.com/matzehuels/goodfirst/pkg/report"
)

const defaultManifest = "package.json"

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "report [manifest]",
		Short: "List good first issues of every dependency",
		Long: `Read a package.json, resolve the GitHub repository of each dependency through
the npm registry, and list its open issues carrying the "good first issue" label.

Every dependency is listed, in manifest order, even when no repository or no
issue was found.

Examples:
  goodfirst report                           # ./package.json as a table
  goodfirst report web/package.json -f json  # JSON to stdout
  goodfirst report -f markdown -o ISSUES.md  # Markdown file
  goodfirst report --label "help wanted"     # another label`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			entries, err := c.runPipeline(cmd.Context(), cfg, &flags, manifestArg(args))
			if err != nil {
				return err
			}
			return c.writeReport(cfg, &flags, entries)
		},
	}

	flags.registerOutput(cmd)
	flags.registerPipeline(cmd)
	return cmd
}

func manifestArg(args []string) string {
	if len(args) == 0 {
		return defaultManifest
	}
	return args[0]
}

// runPipeline runs the report for the manifest at path behind a spinner.
func (c *CLI) runPipeline(ctx context.Context, cfg config.Config, f *runFlags, path string) ([]pipeline.Enriched, error) {
	logger := loggerFromContext(ctx)

	ch := openCache(ctx, cfg, f)
	defer ch.Close()

	var hooks observability.Hooks
	if logger.GetLevel() <= log.DebugLevel {
		hooks = observability.NewLogHooks(logger)
	}

	p := pipeline.NewNPM(cfg.Sources(ch, f.refresh, hooks),
		pipeline.WithLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency))

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Looking for %q issues in %s", cfg.Label, path))
	spinner.Start()
	entries, err := p.RunFile(ctx, path)
	spinner.Stop()

	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	prog.done(fmt.Sprintf("Checked %d dependencies", len(entries)))
	return entries, nil
}

// openCache opens the configured cache. A backend that fails to open
// disables caching for the run instead of failing it.
func openCache(ctx context.Context, cfg config.Config, f *runFlags) cache.Cache {
	logger := loggerFromContext(ctx)

	ch, err := cfg.OpenCache(ctx, f.noCache)
	if err != nil {
		logger.Warn("cache disabled", "backend", cfg.CacheBackend, "err", err)
		return cache.Disabled(err.Error())
	}
	if reason, off := cache.IsDisabled(ch); off {
		logger.Debug("cache disabled", "reason", reason)
	}
	return ch
}

// writeReport renders entries to --output or the CLI's writer and prints a summary.
func (c *CLI) writeReport(cfg config.Config, f *runFlags, entries []pipeline.Enriched) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var w io.Writer = c.Out
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := report.Render(w, format, entries); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	printSummary(report.Summarize(entries))
	if f.output != "" {
		printFile(f.output)
	}
	return nil
}
