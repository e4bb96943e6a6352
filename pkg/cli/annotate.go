package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/vlint/pkg/formatter"
	"github.com/platinummonkey/vlint/pkg/verilog/parser"
)

// newAnnotateCommand creates the annotate command
func newAnnotateCommand(global *globalOptions) *cobra.Command {
	var styleFile string

	cmd := &cobra.Command{
		Use:   "annotate <file>",
		Short: "Print the inter-token spacing a formatter would apply",
		Long: `Annotate parses a Verilog file and prints, for every token, the number
of spaces required before it, the line break decision and the break
penalty. Token pairs without a spacing rule keep their original spacing
and are counted as unhandled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procCfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(procCfg, cmd.ErrOrStderr()).WithField("path", args[0])

			style := formatter.DefaultStyle()
			if styleFile != "" {
				style, err = formatter.LoadStyle(styleFile)
				if err != nil {
					return err
				}
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			ts, err := parser.Analyze(string(content))
			if ts == nil {
				return fmt.Errorf("failed to analyze %s: %w", args[0], err)
			}
			if err != nil {
				logger.WithError(err).Warn("Syntax error, annotating partial tree")
			}

			annotator := formatter.NewAnnotator(style)
			annotator.Logger = logger
			tokens, stats, err := annotator.AnnotateText(ts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := formatter.Dump(out, tokens); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d token pairs, %d unhandled\n", stats.Pairs, stats.Unhandled)
			return nil
		},
	}

	cmd.Flags().StringVar(&styleFile, "style", "", "Path to a YAML format style file")
	return cmd
}
