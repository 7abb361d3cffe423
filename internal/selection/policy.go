// Package selection decides which item of a weighted collection plays next.
package selection

import (
	"errors"
	"fmt"

	"github.com/petuhovskiy/soundpool/internal/queue"
	"github.com/petuhovskiy/soundpool/internal/wrand"
)

// maxRedraws bounds the repeat-avoidance loop. A heavily dominant weight can
// keep returning the last item, after that many attempts the draw is made
// among the other items directly.
const maxRedraws = 32

// Policy is the stateful part of selection: the active mode, the last drawn
// item and the play queue. It is not safe for concurrent use.
type Policy[T comparable] struct {
	mode    Mode
	last    T
	hasLast bool
	queue   queue.Queue[T]
}

func NewPolicy[T comparable](mode Mode) (*Policy[T], error) {
	p := &Policy[T]{}
	if err := p.SetMode(mode); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy[T]) Mode() Mode {
	return p.mode
}

// SetMode switches the draw strategy starting with the next draw. Entering
// a queue mode from another mode drops the queue, so it gets repopulated
// for the new mode before the first dequeue.
func (p *Policy[T]) SetMode(mode Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if mode != p.mode && mode.UsesQueue() {
		p.queue.Reset()
	}
	p.mode = mode
	return nil
}

// Last returns the most recently drawn item.
func (p *Policy[T]) Last() (T, bool) {
	return p.last, p.hasLast
}

// Reset forgets the last drawn item and the queue. Call it whenever the
// collection is rebuilt.
func (p *Policy[T]) Reset() {
	var zero T
	p.last = zero
	p.hasLast = false
	p.queue.Reset()
}

// Draw picks the next item from c. State is only advanced on success.
func (p *Policy[T]) Draw(c *wrand.Collection[T], r wrand.Rand) (T, error) {
	var item T
	var err error

	switch c.Len() {
	case 0:
		return item, wrand.ErrEmptyCollection
	case 1:
		item, err = c.ItemAt(0)
	default:
		item, err = p.draw(c, r)
	}
	if err != nil {
		return item, err
	}

	p.last = item
	p.hasLast = true
	return item, nil
}

// draw dispatches on the mode. The collection has at least two items.
func (p *Policy[T]) draw(c *wrand.Collection[T], r wrand.Rand) (T, error) {
	switch p.mode {
	case Random:
		return c.DrawUnweighted(r)
	case RandomWeighted:
		return c.DrawWeighted(r)
	case Smart:
		return p.drawAvoiding(c, r, c.DrawUnweighted, c.DrawUnweightedExcept)
	case SmartWeighted:
		return p.drawAvoiding(c, r, c.DrawWeighted, c.DrawWeightedExcept)
	case Shuffle:
		return p.dequeue(c, func() {
			var avoid *T
			if p.hasLast {
				last := p.last
				avoid = &last
			}
			p.queue.RefillShuffled(c.Items(), r, avoid)
		})
	case Sequential:
		return p.dequeue(c, func() {
			p.queue.RefillSequential(c.Items())
		})
	case PrimaryOnly:
		return c.ItemAt(0)
	default:
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrUnknownMode, int(p.mode))
	}
}

func (p *Policy[T]) drawAvoiding(
	c *wrand.Collection[T],
	r wrand.Rand,
	draw func(wrand.Rand) (T, error),
	drawExcept func(wrand.Rand, T) (T, error),
) (T, error) {
	if c.Len() < 2 {
		var zero T
		return zero, fmt.Errorf("repeat avoidance needs at least 2 items, got %d", c.Len())
	}
	if !p.hasLast {
		return draw(r)
	}

	for i := 0; i < maxRedraws; i++ {
		item, err := draw(r)
		if err != nil {
			return item, err
		}
		if item != p.last {
			return item, nil
		}
	}
	return drawExcept(r, p.last)
}

func (p *Policy[T]) dequeue(c *wrand.Collection[T], refill func()) (T, error) {
	if p.queue.Len() == 0 {
		refill()
	}

	item, err := p.queue.Dequeue()
	if errors.Is(err, queue.ErrEmptyQueue) {
		return item, fmt.Errorf("play queue empty after refill of %d items: %w", c.Len(), err)
	}
	return item, err
}
