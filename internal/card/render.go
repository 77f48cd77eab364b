package card

// DefaultSlots is the number of rows in the printed fight list
const DefaultSlots = 15

// Slot is one printed row. Blank rows carry no names and no "vs".
type Slot struct {
	Fighter1 string `json:"fighter1,omitempty"`
	Fighter2 string `json:"fighter2,omitempty"`
	Blank    bool   `json:"blank,omitempty"`
	MainCard bool   `json:"main_card,omitempty"`
}

// Vs returns the separator printed between the names
func (s Slot) Vs() string {
	if s.Blank {
		return ""
	}
	return "vs"
}

// Render lays bouts out in a fixed list of slots followed by the five-round bouts.
// A slot whose bout is five rounds, or that has no bout, is left blank; the
// five-round bouts are printed after the fixed slots instead.
func Render(bouts []Bout, slots int) []Slot {
	if len(bouts) == 0 {
		return nil
	}
	if slots <= 0 {
		slots = DefaultSlots
	}

	out := make([]Slot, 0, slots+1)
	for i := 0; i < slots; i++ {
		if i < len(bouts) && !bouts[i].FiveRounds {
			out = append(out, Slot{Fighter1: bouts[i].Fighters.One, Fighter2: bouts[i].Fighters.Two})
			continue
		}
		out = append(out, Slot{Blank: true})
	}

	for _, b := range MainEvents(bouts) {
		out = append(out, Slot{Fighter1: b.Fighters.One, Fighter2: b.Fighters.Two, MainCard: true})
	}

	return out
}
