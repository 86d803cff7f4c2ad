package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/deck"
	"github.com/matzehuels/gradslides/pkg/partition"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PartitionListModel - Interactive deck selection
// =============================================================================

// PartitionListModel is the bubbletea model for choosing one deck to build.
type PartitionListModel struct {
	Partitions []partition.Partition
	Rows       [][]string
	Cursor     int
	Selected   *partition.Partition
	Height     int
	Offset     int
}

// NewPartitionListModel creates a new partition list model. rows holds the
// display columns for each partition.
func NewPartitionListModel(parts []partition.Partition, rows [][]string) PartitionListModel {
	return PartitionListModel{
		Partitions: parts,
		Rows:       rows,
		Height:     15,
	}
}

func (m PartitionListModel) Init() tea.Cmd {
	return nil
}

func (m PartitionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Partitions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Partitions) == 0 {
				return m, nil
			}
			p := m.Partitions[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PartitionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Deck"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ build  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, m.Rows[i]...))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Session", "Deck", "Side", "Graduates", "Output").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Partitions))))

	return b.String()
}

// =============================================================================
// pick command
// =============================================================================

// pickCommand creates the pick command that builds one interactively chosen
// deck, for reprinting a deck after a late change.
func (c *CLI) pickCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose one deck interactively and build only that one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(&flags)
			if err != nil {
				return err
			}
			opts.TestMode = false
			return c.runPick(commandContext(cmd), opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): pptx, json, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&flags.structure, "structure", "", "deck grouping: nested or flat")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, opts deck.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	records, _, err := c.loadRecords(ctx, opts)
	if err != nil {
		return err
	}
	parts, _ := partition.Build(records, partition.Options{Structure: opts.Structure})
	if len(parts) == 0 {
		printWarning("No decks to build")
		return nil
	}

	final, err := tea.NewProgram(NewPartitionListModel(parts, partitionRows(parts, opts)), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("pick: %w", err)
	}
	selected := final.(PartitionListModel).Selected
	if selected == nil {
		return nil
	}

	employers, warnings := deck.LoadEmployers(opts.Employers)
	for _, w := range warnings {
		c.Logger.Warn(w.Message, "source", w.Source, "subject", w.Subject)
	}
	res, err := c.newRunner().Generate(ctx, selected.Records, employers, opts)
	if err != nil {
		return fmt.Errorf("generate %s: %w", selected.Name(), err)
	}
	printStats(res.Stats)
	return nil
}
