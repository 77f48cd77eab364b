package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/mma-picks/internal/score"
	"github.com/spf13/cobra"
)

// ScoresResult is the JSON output of the scores command
type ScoresResult struct {
	Rounds int      `json:"rounds"`
	Count  int      `json:"count"`
	Scores []string `json:"scores"`
}

// CheckResult is the JSON output of the check command
type CheckResult struct {
	Score       string `json:"score"`
	Rounds      int    `json:"rounds"`
	FormatValid bool   `json:"format_valid"`
	Valid       bool   `json:"valid"`
}

func newScoresCmd(opts *options) *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List every valid decision score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := score.ValidScores(rounds)
			if err != nil {
				return err
			}

			result := ScoresResult{Rounds: rounds, Count: set.Len(), Scores: set.Strings()}
			w := cmd.OutOrStdout()
			if opts.outputFormat == FormatJSON {
				return writeJSON(w, result)
			}

			t := newTable(w)
			t.AppendHeader(table.Row{"Score", "Winner", "Loser", "Margin"})
			for _, total := range set.Totals() {
				winner, loser := total.A, total.B
				if loser > winner {
					winner, loser = loser, winner
				}
				t.AppendRow(table.Row{total.String(), winner, loser, winner - loser})
			}
			t.AppendFooter(table.Row{"Total", result.Count, "", ""})
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", score.StandardRounds, "Scheduled rounds: 3 or 5")

	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	var fiveRounds bool

	cmd := &cobra.Command{
		Use:   "check <score>",
		Short: "Check a judge's decision score such as 29-28",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(args[0])
			result := CheckResult{
				Score:       text,
				Rounds:      score.RoundsFor(fiveRounds),
				FormatValid: score.IsFormatValid(text),
				Valid:       score.IsValidDecisionScore(text, fiveRounds),
			}

			w := cmd.OutOrStdout()
			if opts.outputFormat == FormatJSON {
				if err := writeJSON(w, result); err != nil {
					return err
				}
			} else {
				switch {
				case !result.FormatValid:
					fmt.Fprintf(w, "%q is not a score: use two two-digit totals such as %s\n", text, score.Placeholder(fiveRounds))
				case result.Valid:
					fmt.Fprintf(w, "%s is a valid %d-round score\n", text, result.Rounds)
				default:
					fmt.Fprintf(w, "%s is not a valid %d-round score (e.g. %s)\n",
						text, result.Rounds, strings.Join(score.Examples(fiveRounds), ", "))
				}
			}

			if !result.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fiveRounds, "five-rounds", false, "Score a five-round bout")

	return cmd
}
