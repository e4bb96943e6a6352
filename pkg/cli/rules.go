package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/linter/rules"
)

// newRulesCommand creates the rules command
func newRulesCommand() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if markdown {
				return rulesMarkdown(cmd.OutOrStdout(), rules.Default())
			}
			return rulesText(cmd.OutOrStdout(), rules.Default())
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the rule list as Markdown")
	return cmd
}

func rulesText(w io.Writer, registry *linter.Registry) error {
	descriptors := registry.Descriptors()
	fmt.Fprintf(w, "Available lint rules (%d):\n\n", len(descriptors))

	// Group by kind
	for _, kind := range linter.Kinds {
		names := registry.Names(kind)
		if len(names) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s rules:\n", kind)
		for _, name := range names {
			d, err := registry.Descriptor(name)
			if err != nil {
				return err
			}
			marker := ""
			if d.DefaultEnabled {
				marker = " [default]"
			}
			fmt.Fprintf(w, "  - %s%s\n    %s\n", d.Name, marker, d.Description(linter.HelpText))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func rulesMarkdown(w io.Writer, registry *linter.Registry) error {
	fmt.Fprintln(w, "# Lint Rules")
	for _, kind := range linter.Kinds {
		names := registry.Names(kind)
		if len(names) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n## %s\n", kind)
		for _, name := range names {
			d, err := registry.Descriptor(name)
			if err != nil {
				return err
			}
			enabled := "no"
			if d.DefaultEnabled {
				enabled = "yes"
			}
			fmt.Fprintf(w, "\n### `%s`\n\n%s\n\nEnabled by default: %s\n", d.Name, d.Description(linter.Markdown), enabled)
		}
	}
	return nil
}
