package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/mma-picks/internal/pick"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the picks worksheet
const SheetName = "Picks"

// Header is the first row of the picks worksheet
var Header = []string{"Fight #", "Fighter 1", "Fighter 2", "5 Rounds", "Pick", "Method", "Round", "Score"}

// column indexes into Header
const (
	colFight = iota
	colFighter1
	colFighter2
	colFiveRounds
	colPick
	colMethod
	colRound
	colScore
)

// WriteWorkbook creates a picks workbook with one row per entry. The Round column
// of each row offers only the rounds of that bout.
func WriteWorkbook(path string, entries []pick.Entry) error {
	path, err := prepare(path)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "H1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, e := range entries {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, e.Fighter1, e.Fighter2, yesNo(e.FiveRounds), e.Pick, e.Method, e.Round, e.Score}
		if err := f.SetSheetRow(SheetName, axis, &row); err != nil {
			return fmt.Errorf("writing fight %d: %w", i+1, err)
		}

		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("G%d", i+2)
		if err := dv.SetDropList(roundNames(e.FiveRounds)); err != nil {
			return fmt.Errorf("building round drop-down: %w", err)
		}
		if err := f.AddDataValidation(SheetName, dv); err != nil {
			return fmt.Errorf("adding round drop-down: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 26); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	last := len(entries) + 1
	if last < 2 {
		last = 2
	}
	lists := []struct {
		col  string
		keys []string
	}{
		{"D", []string{"yes", "no"}},
		{"E", []string{"1", "2"}},
		{"F", methodNames()},
	}
	for _, l := range lists {
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s2:%s%d", l.col, l.col, last)
		if err := dv.SetDropList(l.keys); err != nil {
			return fmt.Errorf("building %s drop-down: %w", l.col, err)
		}
		if err := f.AddDataValidation(SheetName, dv); err != nil {
			return fmt.Errorf("adding %s drop-down: %w", l.col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func readWorkbook(path string) ([]pick.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	// Use the first sheet
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	entries := make([]pick.Entry, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		entries = append(entries, pick.Entry{
			Fighter1:   cell(row, colFighter1),
			Fighter2:   cell(row, colFighter2),
			FiveRounds: parseYes(cell(row, colFiveRounds)),
			Pick:       cell(row, colPick),
			Method:     cell(row, colMethod),
			Round:      cell(row, colRound),
			Score:      cell(row, colScore),
		})
	}

	return entries, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// isBlank reports whether a row has nothing past the fight number
func isBlank(row []string) bool {
	for i := colFight + 1; i < len(row); i++ {
		if strings.TrimSpace(row[i]) != "" {
			return false
		}
	}
	return true
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseYes(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "x", "5":
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

func roundNames(fiveRounds bool) []string {
	rounds := pick.RoundOptions(fiveRounds)
	names := make([]string, len(rounds))
	for i, r := range rounds {
		names[i] = strconv.Itoa(r)
	}
	return names
}

func methodNames() []string {
	names := make([]string, len(pick.Methods))
	for i, m := range pick.Methods {
		names[i] = string(m)
	}
	return names
}
