package selection

import (
	"errors"
	"fmt"
)

var ErrUnknownMode = errors.New("unknown selection mode")

// Mode determines how items are drawn from a pool.
type Mode int

const (
	// Random picks uniformly, consecutive repeats are possible.
	Random Mode = iota
	// RandomWeighted picks by weight, consecutive repeats are possible.
	RandomWeighted
	// Smart picks uniformly and never returns the same item twice in a row.
	Smart
	// SmartWeighted picks by weight and never returns the same item twice in a row.
	SmartWeighted
	// Shuffle plays a random permutation, then reshuffles. No repeat across
	// the reshuffle boundary.
	Shuffle
	// Sequential plays items in insertion order, wrapping around.
	Sequential
	// PrimaryOnly always plays the first item.
	PrimaryOnly
)

var modeNames = [...]string{
	Random:         "random",
	RandomWeighted: "random_weighted",
	Smart:          "smart",
	SmartWeighted:  "smart_weighted",
	Shuffle:        "shuffle",
	Sequential:     "sequential",
	PrimaryOnly:    "primary_only",
}

func (m Mode) IsValid() bool {
	return m >= Random && m <= PrimaryOnly
}

func (m Mode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// UsesQueue reports whether draws in this mode come from the play queue.
func (m Mode) UsesQueue() bool {
	return m == Shuffle || m == Sequential
}

// AvoidsRepeats reports whether the mode guarantees that two consecutive
// draws differ (for pools with at least two items).
func (m Mode) AvoidsRepeats() bool {
	return m == Smart || m == SmartWeighted || m == Shuffle
}

func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
