// Package host plays named sound pools through an Output. It is the
// playback side of the engine: it draws splashes and hands them over, but
// never touches audio itself.
package host

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/petuhovskiy/soundpool/internal/bgjobs"
	"github.com/petuhovskiy/soundpool/internal/log"
	"github.com/petuhovskiy/soundpool/internal/pool"
	"github.com/petuhovskiy/soundpool/internal/rdesc"
	"github.com/petuhovskiy/soundpool/internal/selection"
	"github.com/petuhovskiy/soundpool/internal/wrand"
)

var ErrUnknownPool = errors.New("unknown pool")

type Host struct {
	mu     sync.RWMutex
	pools  map[string]*pool.Pool[Clip]
	locker *bgjobs.PoolLocker
	output Output
}

func New(output Output, locker *bgjobs.PoolLocker) *Host {
	return &Host{
		pools:  make(map[string]*pool.Pool[Clip]),
		locker: locker,
		output: output,
	}
}

// Add builds a pool from its description, replacing any pool with the same
// name. Selection state of a replaced pool starts over.
func (h *Host) Add(desc rdesc.Pool) error {
	p, err := pool.New(desc.Config(), clipEntries(desc.Entries))
	if err != nil {
		return fmt.Errorf("pool %q: %w", desc.Name, err)
	}

	unlock := h.locker.Get(desc.Name).ExclusiveLock()
	defer unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.pools[desc.Name] = p
	return nil
}

func (h *Host) Remove(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.pools, name)
	h.locker.Delete(name)
}

// Names returns pool names in sorted order.
func (h *Host) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.pools))
	for name := range h.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Draw draws the next splash of the pool without playing it.
func (h *Host) Draw(ctx context.Context, name string) (Cue, error) {
	var cue Cue
	err := h.withPool(name, func(p *pool.Pool[Clip]) error {
		splash, err := p.DrawSplash()
		if err != nil {
			return err
		}
		cue = Cue{Pool: name, Mode: p.Mode(), Splash: splash}
		return nil
	})
	if err != nil {
		DrawErrors.WithLabelValues(name).Inc()
		return Cue{}, fmt.Errorf("draw from %q: %w", name, err)
	}

	Draws.WithLabelValues(name, cue.Mode.String()).Inc()
	SplashVolume.WithLabelValues(name).Observe(cue.Splash.Volume)
	SplashPitch.WithLabelValues(name).Observe(cue.Splash.Pitch)
	log.Debug(ctx, "drawn splash",
		zap.String("pool", name),
		zap.Stringer("mode", cue.Mode),
		zap.String("clip", string(cue.Splash.Item)),
	)
	return cue, nil
}

// Play draws a splash and plays it with volume and pitch applied.
func (h *Host) Play(ctx context.Context, name string) error {
	cue, err := h.Draw(ctx, name)
	if err != nil {
		return err
	}
	return h.play(ctx, cue)
}

// PlayOneShot plays a splash without an owned source, so only the volume is
// applied and pitch stays at 1.
func (h *Host) PlayOneShot(ctx context.Context, name string) error {
	cue, err := h.Draw(ctx, name)
	if err != nil {
		return err
	}
	cue.OneShot = true
	cue.Splash.Pitch = 1
	return h.play(ctx, cue)
}

func (h *Host) play(ctx context.Context, cue Cue) error {
	if err := h.output.Play(ctx, cue); err != nil {
		OutputErrors.WithLabelValues(cue.Pool).Inc()
		return fmt.Errorf("play %q: %w", cue.Pool, err)
	}
	return nil
}

func (h *Host) ChangeMode(ctx context.Context, name string, mode selection.Mode) error {
	return h.withPool(name, func(p *pool.Pool[Clip]) error {
		prev := p.Mode()
		if err := p.SetMode(mode); err != nil {
			return err
		}
		log.Info(ctx, "changed pool mode",
			zap.String("pool", name),
			zap.Stringer("prevMode", prev),
			zap.Stringer("newMode", mode),
		)
		return nil
	})
}

// RangeUpdate holds optional new bounds. Nil fields are left as they are.
type RangeUpdate struct {
	Min *float64
	Max *float64
}

// SetRanges applies bound updates through the pool setters, so a bound that
// crosses the other one drags it along.
func (h *Host) SetRanges(ctx context.Context, name string, volume, pitch RangeUpdate) error {
	return h.withPool(name, func(p *pool.Pool[Clip]) error {
		if volume.Min != nil {
			p.SetVolumeMin(*volume.Min)
		}
		if volume.Max != nil {
			p.SetVolumeMax(*volume.Max)
		}
		if pitch.Min != nil {
			p.SetPitchMin(*pitch.Min)
		}
		if pitch.Max != nil {
			p.SetPitchMax(*pitch.Max)
		}

		cfg := p.Config()
		log.Info(ctx, "changed pool ranges",
			zap.String("pool", name),
			zap.Stringer("volume", cfg.Volume),
			zap.Stringer("pitch", cfg.Pitch),
		)
		return nil
	})
}

// Config returns the current configuration of the pool.
func (h *Host) Config(name string) (pool.Config, error) {
	var cfg pool.Config
	err := h.readPool(name, func(p *pool.Pool[Clip]) error {
		cfg = p.Config()
		return nil
	})
	return cfg, err
}

// withPool runs f under the exclusive pool lock.
func (h *Host) withPool(name string, f func(p *pool.Pool[Clip]) error) error {
	lock := h.locker.Get(name)
	unlock := lock.ExclusiveLock()
	defer unlock()

	return h.lookup(lock, name, f)
}

// readPool runs f under the shared pool lock. f must not draw.
func (h *Host) readPool(name string, f func(p *pool.Pool[Clip]) error) error {
	lock := h.locker.Get(name)
	unlock := lock.SharedLock()
	defer unlock()

	return h.lookup(lock, name, f)
}

func (h *Host) lookup(lock *bgjobs.PoolLock, name string, f func(p *pool.Pool[Clip]) error) error {
	if lock.Deleted.Load() {
		return fmt.Errorf("%w: %s", ErrUnknownPool, name)
	}

	h.mu.RLock()
	p, ok := h.pools[name]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPool, name)
	}

	return f(p)
}

func clipEntries(w rdesc.Wrand[string]) []wrand.Entry[Clip] {
	entries := make([]wrand.Entry[Clip], len(w))
	for i, item := range w {
		entries[i] = wrand.Entry[Clip]{Item: Clip(item.Item), Weight: item.Weight}
	}
	return entries
}
