package pick

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/mma-picks/internal/score"
)

// Method is how a fight is predicted to end
type Method string

const (
	MethodKO  Method = "KO"
	MethodSUB Method = "SUB"
	MethodDEC Method = "DEC"
)

// Methods lists the accepted methods in display order
var Methods = []Method{MethodKO, MethodSUB, MethodDEC}

// Corner identifies a fighter in a pairing
type Corner string

const (
	CornerOne Corner = "one"
	CornerTwo Corner = "two"
)

// Fighters holds both names of a bout
type Fighters struct {
	One string `json:"one" yaml:"one"`
	Two string `json:"two" yaml:"two"`
}

// FightPick is the exported prediction for one bout
type FightPick struct {
	Fighters Fighters `json:"fighters"`
	Pick     *Corner  `json:"pick"`
	Method   *Method  `json:"method"`
	Rounds   int      `json:"rounds"`
	Round    int      `json:"round,omitempty"`
	Score    string   `json:"score,omitempty"`
}

// Export is the document written by the validate command
type Export struct {
	Fights []FightPick `json:"fights"`
}

// Entry is one row as typed by the user. Values are kept as strings so that
// incomplete rows can be reported rather than rejected while decoding.
type Entry struct {
	Fighter1   string `json:"f1" yaml:"f1"`
	Fighter2   string `json:"f2" yaml:"f2"`
	Pick       string `json:"pick" yaml:"pick"`
	Method     string `json:"method" yaml:"method"`
	Round      string `json:"round,omitempty" yaml:"round,omitempty"`
	Score      string `json:"score,omitempty" yaml:"score,omitempty"`
	FiveRounds bool   `json:"five_rounds,omitempty" yaml:"five_rounds,omitempty"`
}

// UnmarshalJSON accepts pick and round as numbers as well as strings
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var raw struct {
		plain
		Pick  json.RawMessage `json:"pick"`
		Round json.RawMessage `json:"round"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick, err := cellText(raw.Pick)
	if err != nil {
		return fmt.Errorf("pick: %w", err)
	}
	round, err := cellText(raw.Round)
	if err != nil {
		return fmt.Errorf("round: %w", err)
	}

	*e = Entry(raw.plain)
	e.Pick = pick
	e.Round = round
	return nil
}

// cellText decodes a JSON string or number. null and absent values are empty.
func cellText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("want a string or number, got %s", raw)
	}
	return n.String(), nil
}

// ParseMethod normalizes user input to a Method. ok is false for unknown values.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodKO, MethodSUB, MethodDEC:
		return m, true
	case "TKO", "KO/TKO":
		return MethodKO, true
	}
	return "", false
}

// finishes reports whether the method ends inside a round
func (m Method) finishes() bool {
	return m == MethodKO || m == MethodSUB
}

// Normalize applies the row rules of the picks form: a finish keeps only the round,
// a decision keeps only the score, and no method keeps neither. Round choices
// beyond the bout length are dropped.
func (e Entry) Normalize() Entry {
	method, _ := ParseMethod(e.Method)
	switch {
	case method.finishes():
		e.Score = ""
		if n, err := strconv.Atoi(strings.TrimSpace(e.Round)); err == nil && n > score.RoundsFor(e.FiveRounds) {
			e.Round = ""
		}
	case method == MethodDEC:
		e.Round = ""
	case strings.TrimSpace(e.Method) == "":
		e.Round = ""
		e.Score = ""
	}
	return e
}

// RoundOptions returns the rounds a finish can be picked in
func RoundOptions(fiveRounds bool) []int {
	limit := score.RoundsFor(fiveRounds)
	out := make([]int, 0, limit)
	for i := 1; i <= limit; i++ {
		out = append(out, i)
	}
	return out
}

// Collect validates every entry and builds the export records. Issues are reported
// per fight, numbered from 1; a non-empty issue list means the export is not usable.
func Collect(entries []Entry) ([]FightPick, []string) {
	fights := make([]FightPick, 0, len(entries))
	var issues []string

	for idx, e := range entries {
		n := idx + 1
		f1 := strings.TrimSpace(e.Fighter1)
		f2 := strings.TrimSpace(e.Fighter2)
		pickText := strings.TrimSpace(e.Pick)
		methodText := strings.TrimSpace(e.Method)
		roundText := strings.TrimSpace(e.Round)
		scoreText := strings.TrimSpace(e.Score)
		rounds := score.RoundsFor(e.FiveRounds)

		if f1 == "" {
			issues = append(issues, fmt.Sprintf("Fight %d: Fighter 1 is required", n))
		}
		if f2 == "" {
			issues = append(issues, fmt.Sprintf("Fight %d: Fighter 2 is required", n))
		}
		corner := parseCorner(pickText)
		if pickText == "" {
			issues = append(issues, fmt.Sprintf("Fight %d: Pick is required", n))
		} else if corner == nil {
			issues = append(issues, fmt.Sprintf("Fight %d: Pick must be 1 or 2", n))
		}

		method, known := ParseMethod(methodText)
		if methodText == "" {
			issues = append(issues, fmt.Sprintf("Fight %d: Method is required", n))
		} else if !known {
			issues = append(issues, fmt.Sprintf("Fight %d: Method must be one of KO, SUB, DEC", n))
		}

		fp := FightPick{
			Fighters: Fighters{One: f1, Two: f2},
			Pick:     corner,
			Rounds:   rounds,
		}
		if known {
			fp.Method = &method
		}

		switch {
		case method.finishes():
			if roundText == "" {
				issues = append(issues, fmt.Sprintf("Fight %d: Round is required for %s", n, method))
				break
			}
			round, err := strconv.Atoi(roundText)
			if err != nil || round < 1 || round > rounds {
				issues = append(issues, fmt.Sprintf("Fight %d: Round must be between 1 and %d", n, rounds))
				break
			}
			fp.Round = round
		case method == MethodDEC:
			if scoreText == "" {
				issues = append(issues, fmt.Sprintf("Fight %d: Score is required for decision (e.g. %s)",
					n, score.Placeholder(e.FiveRounds)))
				break
			}
			if !score.IsValidDecisionScore(scoreText, e.FiveRounds) {
				issues = append(issues, fmt.Sprintf("Fight %d: Invalid MMA score. Use a valid %d-round total (e.g. %s)",
					n, rounds, strings.Join(score.Examples(e.FiveRounds), ", ")))
			}
			fp.Score = scoreText
		}

		fights = append(fights, fp)
	}

	return fights, issues
}

// FormatIssues renders issues the way they are shown to the user
func FormatIssues(issues []string) string {
	if len(issues) == 0 {
		return ""
	}
	return "Fix the following issues:\n- " + strings.Join(issues, "\n- ")
}

func parseCorner(s string) *Corner {
	var c Corner
	switch strings.ToLower(s) {
	case "1", "one":
		c = CornerOne
	case "2", "two":
		c = CornerTwo
	default:
		return nil
	}
	return &c
}

// Winner returns the picked fighter's name, or "" when no pick was made
func (fp FightPick) Winner() string {
	if fp.Pick == nil {
		return ""
	}
	if *fp.Pick == CornerOne {
		return fp.Fighters.One
	}
	return fp.Fighters.Two
}

// Summary describes the pick in one line, e.g. "Roman Dolidze by KO (R2)"
func (fp FightPick) Summary() string {
	winner := fp.Winner()
	if winner == "" {
		return "no pick"
	}
	if fp.Method == nil {
		return winner
	}
	switch {
	case fp.Method.finishes() && fp.Round > 0:
		return fmt.Sprintf("%s by %s (R%d)", winner, *fp.Method, fp.Round)
	case *fp.Method == MethodDEC && fp.Score != "":
		return fmt.Sprintf("%s by DEC (%s)", winner, fp.Score)
	}
	return fmt.Sprintf("%s by %s", winner, *fp.Method)
}
