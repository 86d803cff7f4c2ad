package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/deck"
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/io"
	"github.com/matzehuels/gradslides/pkg/partition"
	"github.com/matzehuels/gradslides/pkg/roster"
)

// inspectCommand creates the inspect command that previews the grouping
// without rendering anything.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		structure string
		export    string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show which decks the inputs produce",
		Long: `Show which decks the inputs produce.

inspect reads the input tables and lists every deck that generate would
write with its graduate count, followed by the distribution of honors
values. Nothing is rendered.

--export writes the merged graduate table (csv or xlsx by extension) with
canonical headers, which is a convenient way to convert old tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(&runFlags{structure: structure})
			if err != nil {
				return err
			}
			return c.runInspect(commandContext(cmd), opts, export)
		},
	}

	cmd.Flags().StringVar(&structure, "structure", "", "deck grouping: nested or flat")
	cmd.Flags().StringVarP(&export, "export", "e", "", "write the merged graduate table to this .csv or .xlsx file")

	return cmd
}

// loadRecords reads the configured input tables and logs their warnings.
func (c *CLI) loadRecords(ctx context.Context, opts deck.Options) ([]roster.Record, []deck.TableResult, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Reading tables...")
	spinner.Start()
	records, tables, warnings, err := deck.LoadInputs(opts.Inputs)
	spinner.Stop()

	for _, w := range warnings {
		c.Logger.Warn(w.Message, "source", w.Source, "subject", w.Subject)
	}
	if err != nil {
		return nil, tables, err
	}
	prog.done(fmt.Sprintf("Loaded %d graduates", len(records)))
	return records, tables, nil
}

func (c *CLI) runInspect(ctx context.Context, opts deck.Options, export string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	records, tables, err := c.loadRecords(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Inputs"))
	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		status := StyleSuccess.Render(iconSuccess)
		if t.Err != nil {
			status = StyleWarning.Render(errors.UserMessage(t.Err))
		}
		rows = append(rows, []string{t.Path, strconv.Itoa(t.Records), status})
	}
	fmt.Println(renderTable([]string{"Table", "Graduates", "Status"}, rows))

	parts, _ := partition.Build(records, partition.Options{Structure: opts.Structure})
	fmt.Println(StyleTitle.Render("Decks"))
	fmt.Println(renderTable([]string{"Session", "Deck", "Side", "Graduates", "Output"}, partitionRows(parts, opts)))

	fmt.Println(StyleTitle.Render("Honors"))
	var honors [][]string
	for _, h := range deck.HonorsDistribution(records) {
		text := h.Text
		if text == "" {
			text = StyleDim.Render("(blank)")
		}
		honors = append(honors, []string{text, h.Tier, strconv.Itoa(h.Count)})
	}
	fmt.Println(renderTable([]string{"Value", "Tier", "Graduates"}, honors))

	printKeyValue("Graduates", strconv.Itoa(len(records)))
	printKeyValue("Decks", strconv.Itoa(len(parts)))

	if export != "" {
		if err := io.ExportTable(roster.ToTable(records), export); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		printSuccess("Exported %d graduates", len(records))
		printFile(export)
	}
	return nil
}

// partitionRows lists partitions the way the inspect and pick views show
// them.
func partitionRows(parts []partition.Partition, opts deck.Options) [][]string {
	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		name := p.Program
		if p.Kind == partition.KindSumma {
			name = "Summa Cum Laude"
		}
		side := p.Side
		if side == "" {
			side = "–"
		}
		rows = append(rows, []string{
			opts.SessionFolder(p.Session),
			name,
			side,
			strconv.Itoa(p.Len()),
			opts.Stem(p),
		})
	}
	return rows
}
