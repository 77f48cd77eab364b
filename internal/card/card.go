package card

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/mma-picks/internal/pick"
)

// Source names the site a card was loaded from
type Source string

const (
	SourceWikipedia Source = "wikipedia"
	SourceTapology  Source = "tapology"
)

// DisplayName returns the human-readable site name
func (s Source) DisplayName() string {
	switch s {
	case SourceWikipedia:
		return "Wikipedia"
	case SourceTapology:
		return "Tapology"
	}
	return string(s)
}

// Pair is a scraped fighter pairing in page order
type Pair [2]string

// Bout is one fight on the card
type Bout struct {
	Fighters   pick.Fighters `json:"fighters"`
	FiveRounds bool          `json:"fiveRounds"`
}

// NewBout creates a bout from trimmed fighter names
func NewBout(one, two string, fiveRounds bool) Bout {
	return Bout{
		Fighters:   pick.Fighters{One: strings.TrimSpace(one), Two: strings.TrimSpace(two)},
		FiveRounds: fiveRounds,
	}
}

// Key is the dedupe key of the pairing, in corner order
func (b Bout) Key() string {
	return b.Fighters.One + "__" + b.Fighters.Two
}

// ID creates a deterministic identifier for the pairing
func (b Bout) ID() string {
	return GenerateID(b.Fighters.One, b.Fighters.Two)
}

// String formats the bout as "One vs. Two"
func (b Bout) String() string {
	return fmt.Sprintf("%s vs. %s", b.Fighters.One, b.Fighters.Two)
}

// Rounds returns the scheduled number of rounds
func (b Bout) Rounds() int {
	if b.FiveRounds {
		return 5
	}
	return 3
}

// Entry converts the bout into an empty picks row
func (b Bout) Entry() pick.Entry {
	return pick.Entry{
		Fighter1:   b.Fighters.One,
		Fighter2:   b.Fighters.Two,
		FiveRounds: b.FiveRounds,
	}
}

// GenerateID hashes the normalized fighter names
func GenerateID(one, two string) string {
	h := sha1.New()
	h.Write([]byte(normalizeName(one) + "|" + normalizeName(two)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Card is a loaded fight card
type Card struct {
	Source    Source    `json:"source"`
	URL       string    `json:"url,omitempty"`
	Title     string    `json:"title,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Fights    []Bout    `json:"fights"`
}

// New creates a card with FetchedAt populated
func New(source Source, url, title string, bouts []Bout) *Card {
	if bouts == nil {
		bouts = []Bout{}
	}
	return &Card{
		Source:    source,
		URL:       url,
		Title:     title,
		FetchedAt: time.Now().UTC(),
		Fights:    bouts,
	}
}

// MainEvents returns the five-round bouts in card order
func MainEvents(bouts []Bout) []Bout {
	var out []Bout
	for _, b := range bouts {
		if b.FiveRounds {
			out = append(out, b)
		}
	}
	return out
}

// Entries converts the card into empty picks rows in card order
func (c *Card) Entries() []pick.Entry {
	entries := make([]pick.Entry, len(c.Fights))
	for i, b := range c.Fights {
		entries[i] = b.Entry()
	}
	return entries
}

// Dedupe drops repeated pairings, keeping the first occurrence
func Dedupe(bouts []Bout) []Bout {
	seen := make(map[string]bool)
	unique := make([]Bout, 0, len(bouts))
	for _, b := range bouts {
		if seen[b.Key()] {
			continue
		}
		seen[b.Key()] = true
		unique = append(unique, b)
	}
	return unique
}

// FromPairs builds bouts in page order, skipping incomplete and repeated pairs
func FromPairs(pairs []Pair) []Bout {
	bouts := make([]Bout, 0, len(pairs))
	for _, p := range pairs {
		b := NewBout(p[0], p[1], false)
		if b.Fighters.One == "" || b.Fighters.Two == "" {
			continue
		}
		bouts = append(bouts, b)
	}
	return Dedupe(bouts)
}

// Preload orders scraped pairs for picking: the page lists the main event first,
// the picks list runs from the first prelim up to the main event, which is the
// only bout set to five rounds.
func Preload(pairs []Pair) []Bout {
	bouts := FromPairs(pairs)
	if len(bouts) == 0 {
		return bouts
	}

	mainKey := bouts[0].Key()
	out := make([]Bout, 0, len(bouts))
	for i := len(bouts) - 1; i >= 0; i-- {
		b := bouts[i]
		if b.Key() == mainKey {
			b.FiveRounds = true
		}
		out = append(out, b)
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
