// Package pool bundles a weighted collection, a selection policy and the
// volume/pitch ranges into something a playback host can draw splashes from.
package pool

import (
	"fmt"
	"math/rand/v2"

	"github.com/petuhovskiy/soundpool/internal/selection"
	"github.com/petuhovskiy/soundpool/internal/wrand"
)

// Splash is one drawn item together with the volume and pitch to play it at.
type Splash[T comparable] struct {
	Item   T
	Volume float64
	Pitch  float64
}

type Config struct {
	Volume Range
	Pitch  Range
	Mode   selection.Mode
	// Seed for the random source. 0 means non-deterministic.
	Seed int64
}

// DefaultConfig plays at unit volume and pitch and never repeats an item
// twice in a row.
func DefaultConfig() Config {
	return Config{
		Volume: Unit,
		Pitch:  Unit,
		Mode:   selection.Smart,
	}
}

// Pool is owned by a single caller. Draws and reconfiguration must not run
// concurrently.
type Pool[T comparable] struct {
	cfg    Config
	items  *wrand.Collection[T]
	policy *selection.Policy[T]
	rnd    *rand.Rand
}

func New[T comparable](cfg Config, entries []wrand.Entry[T]) (*Pool[T], error) {
	policy, err := selection.NewPolicy[T](cfg.Mode)
	if err != nil {
		return nil, err
	}

	cfg.Volume = NewRange(cfg.Volume.Min, cfg.Volume.Max)
	cfg.Pitch = NewRange(cfg.Pitch.Min, cfg.Pitch.Max)

	p := &Pool[T]{
		cfg:    cfg,
		items:  wrand.New[T](),
		policy: policy,
		rnd:    wrand.NewRand(cfg.Seed),
	}
	if err := p.Rebuild(entries); err != nil {
		return nil, err
	}
	return p, nil
}

// Rebuild replaces the weighted collection and resets selection state. On
// error the previous collection stays active.
func (p *Pool[T]) Rebuild(entries []wrand.Entry[T]) error {
	items, err := wrand.FromEntries(entries)
	if err != nil {
		return fmt.Errorf("rebuild pool: %w", err)
	}
	p.items = items
	p.policy.Reset()
	return nil
}

// DrawItem draws the next item and advances the selection state.
func (p *Pool[T]) DrawItem() (T, error) {
	return p.policy.Draw(p.items, p.rnd)
}

// DrawSplash draws the next item with randomized volume and pitch.
func (p *Pool[T]) DrawSplash() (Splash[T], error) {
	item, err := p.DrawItem()
	if err != nil {
		return Splash[T]{}, err
	}
	return Splash[T]{
		Item:   item,
		Volume: p.RandomVolume(),
		Pitch:  p.RandomPitch(),
	}, nil
}

func (p *Pool[T]) RandomVolume() float64 {
	return p.cfg.Volume.Random(p.rnd)
}

func (p *Pool[T]) RandomPitch() float64 {
	return p.cfg.Pitch.Random(p.rnd)
}

func (p *Pool[T]) Config() Config {
	return p.cfg
}

func (p *Pool[T]) Mode() selection.Mode {
	return p.policy.Mode()
}

func (p *Pool[T]) SetMode(mode selection.Mode) error {
	if err := p.policy.SetMode(mode); err != nil {
		return err
	}
	p.cfg.Mode = mode
	return nil
}

// SetSeed restarts the random source. Seed 0 picks a random seed.
func (p *Pool[T]) SetSeed(seed int64) {
	p.cfg.Seed = seed
	p.rnd = wrand.NewRand(seed)
}

func (p *Pool[T]) SetVolumeMin(v float64) { p.cfg.Volume.SetMin(v) }
func (p *Pool[T]) SetVolumeMax(v float64) { p.cfg.Volume.SetMax(v) }
func (p *Pool[T]) SetPitchMin(v float64)  { p.cfg.Pitch.SetMin(v) }
func (p *Pool[T]) SetPitchMax(v float64)  { p.cfg.Pitch.SetMax(v) }

func (p *Pool[T]) Len() int {
	return p.items.Len()
}

func (p *Pool[T]) Items() []T {
	return p.items.Items()
}

func (p *Pool[T]) Entries() []wrand.Entry[T] {
	return p.items.Entries()
}

// Last returns the most recently drawn item.
func (p *Pool[T]) Last() (T, bool) {
	return p.policy.Last()
}
