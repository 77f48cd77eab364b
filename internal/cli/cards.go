package cli

import (
	"fmt"

	"github.com/pfrederiksen/mma-picks/internal/card"
	"github.com/pfrederiksen/mma-picks/internal/logger"
	"github.com/pfrederiksen/mma-picks/internal/scraper"
	"github.com/pfrederiksen/mma-picks/internal/sheet"
	"github.com/spf13/cobra"
)

// FetchResult is the JSON output of the fetch commands
type FetchResult struct {
	Status string     `json:"status"`
	Card   *card.Card `json:"card"`
}

func newFetchCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Load an upcoming fight card",
	}
	cmd.PersistentFlags().StringVar(&out, "out", "", "Write the card as JSON to this file")

	run := func(cmd *cobra.Command, source card.Source, pageURL string) error {
		defer logger.LogMetrics()
		s := scraper.New(opts.cfg)
		c, status := s.Load(cmd.Context(), source, pageURL)

		w := cmd.OutOrStdout()
		if opts.outputFormat == FormatJSON {
			if err := writeJSON(w, FetchResult{Status: status, Card: c}); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(w, status)
			writeCard(w, c)
		}

		if len(c.Fights) == 0 {
			return errFailed
		}

		if out != "" {
			if err := sheet.WriteCard(out, c); err != nil {
				return err
			}
			logger.Info("Card saved", logger.Fields{"path": out})
		}
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "wikipedia [event-url]",
			Short: "Load a card from Wikipedia (latest scheduled event when no URL is given)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pageURL := ""
				if len(args) == 1 {
					pageURL = args[0]
				}
				return run(cmd, card.SourceWikipedia, pageURL)
			},
		},
		&cobra.Command{
			Use:   "tapology",
			Short: "Load the next event from the Tapology fight center",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, card.SourceTapology, "")
			},
		},
	)

	return cmd
}

func newSheetCmd(opts *options) *cobra.Command {
	var cardPath, out string

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Build a picks workbook from a saved card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := sheet.ReadCard(cardPath)
			if err != nil {
				return err
			}
			if len(c.Fights) == 0 {
				return fmt.Errorf("card %s has no fights", cardPath)
			}

			if err := sheet.WriteWorkbook(out, c.Entries()); err != nil {
				return err
			}

			if opts.outputFormat == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"path": out, "fights": len(c.Fights)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d fights to %s\n", len(c.Fights), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardPath, "card", "", "Card JSON written by fetch --out (required)")
	cmd.Flags().StringVar(&out, "out", "picks.xlsx", "Workbook to create")
	cmd.MarkFlagRequired("card")

	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	var cardPath string
	var slots int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the fight list with main events last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := sheet.ReadCard(cardPath)
			if err != nil {
				return err
			}

			if slots <= 0 {
				slots = opts.cfg.Output.Slots
			}
			rendered := card.Render(c.Fights, slots)

			w := cmd.OutOrStdout()
			if opts.outputFormat == FormatJSON {
				if rendered == nil {
					rendered = []card.Slot{}
				}
				return writeJSON(w, rendered)
			}
			if len(rendered) == 0 {
				fmt.Fprintln(w, "No fights to render.")
				return nil
			}
			writeSlots(w, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&cardPath, "card", "", "Card JSON written by fetch --out (required)")
	cmd.Flags().IntVar(&slots, "slots", 0, "Number of fixed rows (default from config)")
	cmd.MarkFlagRequired("card")

	return cmd
}

func newReconcileCmd(opts *options) *cobra.Command {
	var pageURL string
	var threshold float64

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare the Wikipedia and Tapology cards for the next event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.LogMetrics()
			ctx := cmd.Context()
			s := scraper.New(opts.cfg)
			wiki, wikiStatus := s.Load(ctx, card.SourceWikipedia, pageURL)
			tap, tapStatus := s.Load(ctx, card.SourceTapology, "")

			w := cmd.OutOrStdout()
			if len(wiki.Fights) == 0 || len(tap.Fights) == 0 {
				fmt.Fprintln(w, wikiStatus)
				fmt.Fprintln(w, tapStatus)
				return errFailed
			}

			result := card.Reconcile(wiki.Fights, tap.Fights, threshold)
			if opts.outputFormat == FormatJSON {
				return writeJSON(w, result)
			}

			fmt.Fprintln(w, wikiStatus)
			fmt.Fprintln(w, tapStatus)
			writeReconciliation(w, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "wikipedia-url", "", "Wikipedia event URL (default: latest scheduled event)")
	cmd.Flags().Float64Var(&threshold, "threshold", card.DefaultThreshold, "Minimum similarity for a fuzzy match")

	return cmd
}
