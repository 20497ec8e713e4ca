package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goodfirst/pkg/config"
)

// runFlags holds the command-line flags shared by report, browse and serve.
// Only flags the user set override the configuration.
type runFlags struct {
	format      string        // table, json or markdown
	output      string        // output file path (stdout if empty)
	label       string        // issue label
	token       string        // GitHub token
	refresh     bool          // bypass cache reads
	noCache     bool          // disable caching entirely
	concurrency int           // in-flight requests per stage
	timeout     time.Duration // per-request timeout
	perPage     int           // issues per repository
	listen      string        // API listen address
}

func (f *runFlags) registerPipeline(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.label, "label", "", `issue label (default "good first issue")`)
	fs.StringVar(&f.token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	fs.BoolVar(&f.refresh, "refresh", false, "bypass cache")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.IntVar(&f.concurrency, "concurrency", 0, "maximum in-flight requests per stage (0 = unlimited)")
	fs.DurationVar(&f.timeout, "timeout", 0, "HTTP request timeout (default 10s)")
	fs.IntVar(&f.perPage, "per-page", 0, "maximum issues per repository (default 30)")
}

func (f *runFlags) registerOutput(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", "", "output format: table, json, markdown")
	fs.StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
}

func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if set("format") {
		cfg.Format = f.format
	}
	if set("label") {
		cfg.Label = f.label
	}
	if set("token") {
		cfg.GitHubToken = f.token
	}
	if set("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if set("timeout") {
		cfg.Timeout = f.timeout
	}
	if set("per-page") {
		cfg.PerPage = f.perPage
	}
	if set("listen") {
		cfg.Listen = f.listen
	}
}
