package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/goodfirst/internal/api"
	"github.com/matzehuels/goodfirst/pkg/config"
	"github.com/matzehuels/goodfirst/pkg/observability"
	"github.com/matzehuels/goodfirst/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP",
		Long: `Start an HTTP server that runs the report pipeline on posted manifests.

Endpoints:
  POST /v1/report   package.json body, JSON report (?format=markdown for Markdown)
  GET  /healthz     liveness check

Example:
  goodfirst serve --listen :9000
  curl --data-binary @package.json localhost:9000/v1/report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.serve(cmd, cfg, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.listen, "listen", "", `listen address (default ":8080")`)
	flags.registerPipeline(cmd)
	return cmd
}

func (c *CLI) serve(cmd *cobra.Command, cfg config.Config, f *runFlags) error {
	ctx := cmd.Context()
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

	printInfo("Serving on %s", cfg.Listen)
	return api.New(p, logger).ListenAndServe(ctx, cfg.Listen)
}
