package card

import (
	"sort"

	"github.com/antzucaro/matchr"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity for a fuzzy match
const DefaultThreshold = 0.85

// Link pairs the same bout as listed by two sources
type Link struct {
	Left        Bout    `json:"left"`
	Right       Bout    `json:"right"`
	Correlation float64 `json:"correlation"`
	Swapped     bool    `json:"swapped,omitempty"` // corners listed in opposite order
}

// Reconciliation is the result of lining up two cards
type Reconciliation struct {
	Matched   []Link `json:"matched"`
	OnlyLeft  []Bout `json:"only_left"`
	OnlyRight []Bout `json:"only_right"`
}

// Reconcile matches bouts from two cards. Exact pairings (in either corner order)
// are linked first; remaining bouts are linked to their most similar counterpart
// when the similarity reaches threshold.
func Reconcile(left, right []Bout, threshold float64) *Reconciliation {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	result := &Reconciliation{
		Matched:   make([]Link, 0),
		OnlyLeft:  make([]Bout, 0),
		OnlyRight: make([]Bout, 0),
	}
	matchedLeft := make(map[int]bool)
	matchedRight := make(map[int]bool)

	for i, l := range left {
		for j, r := range right {
			if matchedRight[j] {
				continue
			}
			straight := l.ID() == r.ID()
			swapped := l.ID() == GenerateID(r.Fighters.Two, r.Fighters.One)
			if straight || swapped {
				result.Matched = append(result.Matched, Link{Left: l, Right: r, Correlation: 1, Swapped: !straight})
				matchedLeft[i] = true
				matchedRight[j] = true
				break
			}
		}
	}

	// fuzzy links are assigned best first
	var candidates []candidate
	for i, l := range left {
		if matchedLeft[i] {
			continue
		}
		for j, r := range right {
			if matchedRight[j] {
				continue
			}
			if sim, swapped := similarity(l, r); sim >= threshold {
				candidates = append(candidates, candidate{left: i, right: j, score: sim, swapped: swapped})
			}
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	for _, c := range candidates {
		if matchedLeft[c.left] || matchedRight[c.right] {
			continue
		}
		result.Matched = append(result.Matched, Link{
			Left:        left[c.left],
			Right:       right[c.right],
			Correlation: c.score,
			Swapped:     c.swapped,
		})
		matchedLeft[c.left] = true
		matchedRight[c.right] = true
	}

	for i, l := range left {
		if !matchedLeft[i] {
			result.OnlyLeft = append(result.OnlyLeft, l)
		}
	}
	for j, r := range right {
		if !matchedRight[j] {
			result.OnlyRight = append(result.OnlyRight, r)
		}
	}

	return result
}

type candidate struct {
	left, right int
	score       float64
	swapped     bool
}

// similarity scores two bouts by comparing fighter names corner by corner, trying
// both corner orders
func similarity(a, b Bout) (float64, bool) {
	one, two := normalizeName(a.Fighters.One), normalizeName(a.Fighters.Two)
	rOne, rTwo := normalizeName(b.Fighters.One), normalizeName(b.Fighters.Two)

	straight := (matchr.JaroWinkler(one, rOne, false) + matchr.JaroWinkler(two, rTwo, false)) / 2
	swapped := (matchr.JaroWinkler(one, rTwo, false) + matchr.JaroWinkler(two, rOne, false)) / 2

	if swapped > straight {
		return swapped, true
	}
	return straight, false
}
