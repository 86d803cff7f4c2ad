package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/deck"
)

// generateCommand creates the generate command, the default action.
func (c *CLI) generateCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the ceremony decks",
		Long: `Generate the ceremony decks.

Every input table is read, graduates are grouped per session, programme and
seating side, and one deck is written per group. Summa cum laude graduates
of a session get their own deck in front of everyone else.

With --test (or test_mode = true) only the sample graduate is rendered to
output/Test/TEST_POSITION, which is quick to check against the templates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(&flags)
			if err != nil {
				return err
			}
			return c.runGenerate(commandContext(cmd), opts)
		},
	}

	flags.register(cmd)
	return cmd
}

// runGenerate runs the pipeline and prints a summary.
func (c *CLI) runGenerate(ctx context.Context, opts deck.Options) error {
	res, err := c.newRunner().Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printStats(res.Stats)
	c.Logger.Debug("manifest written", "path", opts.ManifestPath(), "run", res.RunID)
	if opts.TestMode {
		printNextStep("Generate the ceremony decks", appName+" generate")
	}
	return nil
}
