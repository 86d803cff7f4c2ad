package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gradslides/pkg/deck"
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/lookup"
)

// matchCommand creates the match command that checks the employer table
// against the graduates.
func (c *CLI) matchCommand() *cobra.Command {
	var (
		employers string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Check how many graduates the employer table covers",
		Long: `Check how many graduates the employer table covers.

Names are matched exactly, ignoring case and Unicode composition. The
report lists every graduate without an employer so the table can be fixed
before the ceremony; --all lists the matches too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(nil)
			if err != nil {
				return err
			}
			if employers != "" {
				opts.Employers = employers
			}
			return c.runMatch(commandContext(cmd), opts, all)
		},
	}

	cmd.Flags().StringVar(&employers, "employers", "", "employer table (overrides the configured one)")
	cmd.Flags().BoolVar(&all, "all", false, "list matched graduates too")

	return cmd
}

func (c *CLI) runMatch(ctx context.Context, opts deck.Options, all bool) error {
	if opts.Employers == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no employer table: set employers in the configuration or pass --employers")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	records, _, err := c.loadRecords(ctx, opts)
	if err != nil {
		return err
	}
	employers, warnings := deck.LoadEmployers(opts.Employers)
	for _, w := range warnings {
		c.Logger.Warn(w.Message, "source", w.Source, "subject", w.Subject)
	}
	if employers.Len() == 0 {
		return errors.New(errors.ErrCodeNoData, "employer table %s has no usable rows", opts.Employers)
	}

	report := lookup.MatchReport(records, employers)
	fmt.Println(renderTable([]string{"Graduate", "Key", "Employer"}, matchRows(report, all)))

	printKeyValue("Graduates", fmt.Sprint(report.Total))
	printKeyValue("Employers", fmt.Sprint(employers.Len()))
	printKeyValue("Matched", fmt.Sprintf("%d (%.1f%%)", report.Matched, report.Rate()))
	if missing := report.Total - report.Matched; missing > 0 {
		printWarning("%d graduates without employer", missing)
	} else {
		printSuccess("Every graduate has an employer")
	}
	return nil
}

func matchRows(r lookup.Report, all bool) [][]string {
	var rows [][]string
	for _, m := range r.Matches {
		employer, ok := m.Employer.Get()
		if ok && !all {
			continue
		}
		if !ok {
			employer = StyleWarning.Render("NO MATCH")
		}
		rows = append(rows, []string{m.Name, m.Key, employer})
	}
	return rows
}
