package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/vlint/pkg/config"
	"github.com/platinummonkey/vlint/pkg/observability"
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3"
var Version = "dev"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	logLevel  string
	logFormat string
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:     "vlint",
		Version: Version,
		Short:   "vlint - A Verilog/SystemVerilog linter and formatter toolkit",
		Long: `vlint checks Verilog and SystemVerilog sources against a configurable
set of style and correctness rules, and annotates token streams with the
spacing a formatter should apply.

Project settings are read from .vlint.yaml; process settings from VLINT_*
environment variables. Flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $VLINT_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text, json (default $VLINT_LOG_FORMAT or text)")

	root.AddCommand(newLintCommand(opts))
	root.AddCommand(newRulesCommand())
	root.AddCommand(newAnnotateCommand(opts))
	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrViolationsFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadConfig reads the process configuration and applies the persistent
// flags on top of it
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		level, err := observability.ParseLogLevel(o.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.Log.Level = level
	}
	if o.logFormat != "" {
		cfg.Log.Format = observability.LogFormat(strings.ToLower(o.logFormat))
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the command logger writing to w
func newLogger(cfg *config.Config, w io.Writer) *observability.Logger {
	return observability.NewLoggerWithFormat(cfg.Log.Level, cfg.Log.Format, w)
}
