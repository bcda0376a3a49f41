// Package cli implements the insights command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/render"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/authenticating"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting"
	"github.com/vfg2006/meta-insights-connector/pkg/log"
)

// Deps holds the services commands run against.
type Deps struct {
	Config   *config.Config
	Reporter reporting.Reporter
	Auth     authenticating.Authenticator
}

// DepsFunc builds Deps on first use, so --help never needs configuration.
type DepsFunc func() (*Deps, error)

type globalFlags struct {
	format string
	out    string
}

// DefaultDeps loads the configuration from the environment and wires the
// Marketing API client.
func DefaultDeps() (*Deps, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	log.Setup(cfg.App.LogLevel)

	integrator := meta.New(metaclient.NewClient(cfg))

	return &Deps{
		Config:   cfg,
		Reporter: reporting.NewService(cfg, integrator),
		Auth:     authenticating.NewService(cfg),
	}, nil
}

// NewRootCmd builds the command tree. build is called by each command that
// needs services.
func NewRootCmd(build DepsFunc) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "insights",
		Short: "insights reads Meta ads insights as flat reports",
		Long: `insights runs Marketing API insights reports from the command line.

Quick start:
  insights accounts                                   # list readable ad accounts
  insights schema --currency CURRENCY_EUR             # list reportable fields
  insights report --account 123 --fields date__date,cost__spend --days 7`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.format, "format", render.FormatTable, "output format: table|csv|json")
	pf.StringVar(&flags.out, "out", "", "write output to file instead of stdout")

	root.AddCommand(
		newReportCmd(build, flags),
		newSchemaCmd(build, flags),
		newAccountsCmd(build, flags),
		newTokenCmd(build),
		newMigrateCmd(build),
	)

	return root
}

// Execute is the entry point called by main.
func Execute() {
	if err := NewRootCmd(DefaultDeps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// output resolves the format flag and the writer, returning a closer for --out.
func (f *globalFlags) output(cmd *cobra.Command) (io.Writer, string, func() error, error) {
	format, err := render.ParseFormat(f.format)
	if err != nil {
		return nil, "", nil, err
	}

	if f.out == "" {
		return cmd.OutOrStdout(), format, func() error { return nil }, nil
	}

	file, err := os.Create(f.out)
	if err != nil {
		return nil, "", nil, fmt.Errorf("creating output file: %w", err)
	}
	return file, format, file.Close, nil
}
