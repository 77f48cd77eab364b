package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/mma-picks/internal/logger"
	"github.com/pfrederiksen/mma-picks/internal/pick"
	"github.com/pfrederiksen/mma-picks/internal/sheet"
	"github.com/spf13/cobra"
)

// IssuesResult is the JSON output of validate when picks are incomplete
type IssuesResult struct {
	Issues []string `json:"issues"`
}

func newValidateCmd(opts *options) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "validate <picks.xlsx|picks.yaml|picks.json>",
		Short: "Validate filled-in picks and print the export",
		Long: `Validate filled-in picks and print the export.

YAML and JSON files hold a list of rows with the keys f1, f2, pick, method,
round, score and five_rounds. pick is 1 or 2 and round is a number; both may
be written quoted or unquoted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := sheet.ReadEntries(args[0])
			if err != nil {
				return err
			}

			fights, issues := pick.Collect(entries)
			logger.Info("Picks validated", logger.Fields{
				"file":   args[0],
				"fights": len(fights),
				"issues": len(issues),
			})

			w := cmd.OutOrStdout()
			if len(issues) > 0 {
				if opts.outputFormat == FormatJSON {
					if err := writeJSON(w, IssuesResult{Issues: issues}); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(w, pick.FormatIssues(issues))
				}
				return errInvalid
			}

			if summary && opts.outputFormat == FormatText {
				t := newTable(w)
				t.AppendHeader(table.Row{"#", "Bout", "Pick"})
				for i, fp := range fights {
					t.AppendRow(table.Row{i + 1, fp.Fighters.One + " vs. " + fp.Fighters.Two, fp.Summary()})
				}
				t.Render()
				return nil
			}

			return writeJSON(w, pick.Export{Fights: fights})
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "Print a table of picks instead of the export JSON")

	return cmd
}
