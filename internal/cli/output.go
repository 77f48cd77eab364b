package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/mma-picks/internal/card"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// writeCard prints a card header and its bouts in card order
func writeCard(w io.Writer, c *card.Card) {
	if c.Title != "" {
		fmt.Fprintf(w, "\n%s (%s)\n", c.Title, c.Source.DisplayName())
	}
	if len(c.Fights) == 0 {
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Fighter 1", "Fighter 2", "Rounds"})
	for i, b := range c.Fights {
		t.AppendRow(table.Row{i + 1, b.Fighters.One, b.Fighters.Two, b.Rounds()})
	}
	t.Render()
}

// writeSlots prints the fixed fight list; five-round bouts follow a separator
func writeSlots(w io.Writer, slots []card.Slot) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Fighter 1", "", "Fighter 2"})
	separated := false
	for i, s := range slots {
		if s.MainCard && !separated {
			t.AppendSeparator()
			separated = true
		}
		t.AppendRow(table.Row{i + 1, s.Fighter1, s.Vs(), s.Fighter2})
	}
	t.Render()
}

func writeReconciliation(w io.Writer, r *card.Reconciliation) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Wikipedia", "Tapology", "Correlation"})
	for _, l := range r.Matched {
		right := l.Right.String()
		if l.Swapped {
			right += " (swapped)"
		}
		t.AppendRow(table.Row{l.Left.String(), right, fmt.Sprintf("%.2f", l.Correlation)})
	}
	for _, b := range r.OnlyLeft {
		t.AppendRow(table.Row{b.String(), "-", "-"})
	}
	for _, b := range r.OnlyRight {
		t.AppendRow(table.Row{"-", b.String(), "-"})
	}
	t.AppendFooter(table.Row{"", "Matched", fmt.Sprintf("%d", len(r.Matched))})
	t.Render()
}
