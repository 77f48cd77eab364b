package score

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const (
	StandardRounds     = 3
	ChampionshipRounds = 5
	MaxRounds          = ChampionshipRounds
)

// ErrInvalidRounds is returned for round counts other than 3 or 5
var ErrInvalidRounds = errors.New("round count must be 3 or 5")

var formatPattern = regexp.MustCompile(`^\d{2}-\d{2}$`)

// RoundOutcome is the points awarded to fighter A and fighter B in one round
type RoundOutcome struct {
	A int
	B int
}

// Outcomes is the fixed set of scorable rounds. 10-10 rounds are not supported.
var Outcomes = []RoundOutcome{
	{A: 10, B: 9},
	{A: 10, B: 8},
	{A: 10, B: 7},
	{A: 9, B: 10},
	{A: 8, B: 10},
	{A: 7, B: 10},
}

// Total is the sum of per-round points across a bout
type Total struct {
	A int
	B int
}

// String formats the total as "A-B"
func (t Total) String() string {
	return fmt.Sprintf("%d-%d", t.A, t.B)
}

// Mirror returns the total seen from the other fighter's corner
func (t Total) Mirror() Total {
	return Total{A: t.B, B: t.A}
}

// ParseTotal parses an "A-B" string
func ParseTotal(text string) (Total, error) {
	a, b, ok := strings.Cut(text, "-")
	if !ok {
		return Total{}, fmt.Errorf("missing hyphen in score %q", text)
	}
	left, err := strconv.Atoi(a)
	if err != nil {
		return Total{}, fmt.Errorf("parsing score %q: %w", text, err)
	}
	right, err := strconv.Atoi(b)
	if err != nil {
		return Total{}, fmt.Errorf("parsing score %q: %w", text, err)
	}
	return Total{A: left, B: right}, nil
}

// Set is a deduplicated collection of "A-B" score strings
type Set map[string]struct{}

// Has reports whether the score string is in the set
func (s Set) Has(text string) bool {
	_, ok := s[text]
	return ok
}

// Len returns the number of distinct totals
func (s Set) Len() int {
	return len(s)
}

// Totals returns the members ordered by fighter A's points descending, then fighter B's
// points ascending.
func (s Set) Totals() []Total {
	totals := make([]Total, 0, len(s))
	for text := range s {
		t, err := ParseTotal(text)
		if err != nil {
			continue
		}
		totals = append(totals, t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].A != totals[j].A {
			return totals[i].A > totals[j].A
		}
		return totals[i].B < totals[j].B
	})
	return totals
}

// Strings returns the members in Totals order
func (s Set) Strings() []string {
	totals := s.Totals()
	out := make([]string, len(totals))
	for i, t := range totals {
		out[i] = t.String()
	}
	return out
}

// GenerateValidScores enumerates every sequence of rounds outcomes and collects the
// resulting totals. Round counts outside 1..MaxRounds yield an empty set.
func GenerateValidScores(rounds int) Set {
	set := make(Set)
	if rounds < 1 || rounds > MaxRounds {
		return set
	}

	var walk func(depth, a, b int)
	walk = func(depth, a, b int) {
		if depth == rounds {
			t := Total{A: a, B: b}
			set[t.String()] = struct{}{}
			set[t.Mirror().String()] = struct{}{}
			return
		}
		for _, o := range Outcomes {
			walk(depth+1, a+o.A, b+o.B)
		}
	}
	walk(0, 0, 0)

	return set
}

// ValidateRounds rejects round counts the validator does not serve
func ValidateRounds(rounds int) error {
	if rounds != StandardRounds && rounds != ChampionshipRounds {
		return fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}
	return nil
}

// RoundsFor maps the five-rounds toggle to a round count
func RoundsFor(fiveRounds bool) int {
	if fiveRounds {
		return ChampionshipRounds
	}
	return StandardRounds
}

var (
	threeOnce sync.Once
	fiveOnce  sync.Once
	threeSet  Set
	fiveSet   Set
)

// ValidScores returns the cached set for a 3- or 5-round bout, computing it on first
// use. The returned set must not be modified.
func ValidScores(rounds int) (Set, error) {
	if err := ValidateRounds(rounds); err != nil {
		return nil, err
	}
	if rounds == ChampionshipRounds {
		fiveOnce.Do(func() { fiveSet = GenerateValidScores(ChampionshipRounds) })
		return fiveSet, nil
	}
	threeOnce.Do(func() { threeSet = GenerateValidScores(StandardRounds) })
	return threeSet, nil
}

// IsFormatValid reports whether text is exactly two digits, a hyphen and two digits
func IsFormatValid(text string) bool {
	return formatPattern.MatchString(text)
}

// IsValidDecisionScore reports whether text is a reachable total for the bout length
func IsValidDecisionScore(text string, fiveRounds bool) bool {
	if !IsFormatValid(text) {
		return false
	}
	set, err := ValidScores(RoundsFor(fiveRounds))
	if err != nil {
		return false
	}
	return set.Has(text)
}

// Examples returns the sample totals shown to users for a bout length
func Examples(fiveRounds bool) []string {
	if fiveRounds {
		return []string{"50-45", "49-46", "48-47"}
	}
	return []string{"30-27", "29-28", "29-27"}
}

// Placeholder returns the single sample total used as an input hint
func Placeholder(fiveRounds bool) string {
	if fiveRounds {
		return "49-46"
	}
	return "29-28"
}
