// Package wrand implements an ordered collection of weighted items with
// uniform and weighted random draws.
package wrand

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidWeight   = errors.New("invalid weight")
	ErrEmptyCollection = errors.New("empty collection")
	ErrDuplicateItem   = errors.New("duplicate item")
	ErrIndexOutOfRange = errors.New("index out of range")
)

type Entry[T comparable] struct {
	Item   T
	Weight float64
}

// Collection keeps items in insertion order. Items are unique, weights are
// non-negative.
type Collection[T comparable] struct {
	entries []Entry[T]
	index   map[T]int
	total   float64
}

func New[T comparable]() *Collection[T] {
	return &Collection[T]{
		index: make(map[T]int),
	}
}

// FromEntries builds a collection, failing on the first invalid entry.
func FromEntries[T comparable](entries []Entry[T]) (*Collection[T], error) {
	c := New[T]()
	for i, e := range entries {
		if err := c.Add(e.Item, e.Weight); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return c, nil
}

// Add appends an item. The collection is not modified on error.
func (c *Collection[T]) Add(item T, weight float64) error {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	if _, ok := c.index[item]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateItem, item)
	}

	c.index[item] = len(c.entries)
	c.entries = append(c.entries, Entry[T]{Item: item, Weight: weight})
	c.total += weight
	return nil
}

func (c *Collection[T]) Len() int {
	return len(c.entries)
}

func (c *Collection[T]) TotalWeight() float64 {
	return c.total
}

// ItemAt returns the item at the given insertion index.
func (c *Collection[T]) ItemAt(i int) (T, error) {
	if i < 0 || i >= len(c.entries) {
		var zero T
		return zero, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(c.entries))
	}
	return c.entries[i].Item, nil
}

// Index returns the insertion index of the item, or -1.
func (c *Collection[T]) Index(item T) int {
	if i, ok := c.index[item]; ok {
		return i
	}
	return -1
}

func (c *Collection[T]) Weight(item T) (float64, bool) {
	i, ok := c.index[item]
	if !ok {
		return 0, false
	}
	return c.entries[i].Weight, true
}

// Items returns a copy of all items in insertion order.
func (c *Collection[T]) Items() []T {
	items := make([]T, len(c.entries))
	for i, e := range c.entries {
		items[i] = e.Item
	}
	return items
}

func (c *Collection[T]) Entries() []Entry[T] {
	return append([]Entry[T](nil), c.entries...)
}

// DrawUnweighted returns a uniformly random item, ignoring weights.
func (c *Collection[T]) DrawUnweighted(r Rand) (T, error) {
	switch len(c.entries) {
	case 0:
		var zero T
		return zero, ErrEmptyCollection
	case 1:
		return c.entries[0].Item, nil
	}
	return c.entries[r.IntN(len(c.entries))].Item, nil
}

// DrawWeighted returns an item with probability proportional to its weight.
// If every weight is zero, it falls back to a uniform draw.
func (c *Collection[T]) DrawWeighted(r Rand) (T, error) {
	switch {
	case len(c.entries) == 0:
		var zero T
		return zero, ErrEmptyCollection
	case len(c.entries) == 1:
		return c.entries[0].Item, nil
	case c.total <= 0:
		return c.DrawUnweighted(r)
	}
	return pick(c.entries, c.total, r), nil
}

// DrawUnweightedExcept draws uniformly among the items not equal to skip.
// It returns ErrEmptyCollection when skip is the only item.
func (c *Collection[T]) DrawUnweightedExcept(r Rand, skip T) (T, error) {
	rest := c.without(skip)
	if len(rest) == 0 {
		var zero T
		return zero, ErrEmptyCollection
	}
	return rest[r.IntN(len(rest))].Item, nil
}

// DrawWeightedExcept draws by weight among the items not equal to skip,
// uniformly if the remaining weights are all zero.
func (c *Collection[T]) DrawWeightedExcept(r Rand, skip T) (T, error) {
	rest := c.without(skip)
	if len(rest) == 0 {
		var zero T
		return zero, ErrEmptyCollection
	}

	var sum float64
	for _, e := range rest {
		sum += e.Weight
	}
	if sum <= 0 {
		return rest[r.IntN(len(rest))].Item, nil
	}
	return pick(rest, sum, r), nil
}

func (c *Collection[T]) without(skip T) []Entry[T] {
	rest := make([]Entry[T], 0, len(c.entries))
	for _, e := range c.entries {
		if e.Item != skip {
			rest = append(rest, e)
		}
	}
	return rest
}

// pick expects sum > 0.
func pick[T comparable](entries []Entry[T], sum float64, r Rand) T {
	x := r.Float64() * sum

	for _, e := range entries {
		if x < e.Weight {
			return e.Item
		}
		x -= e.Weight
	}

	// rounding leftovers land on the last item that can be chosen at all
	for i := len(entries) - 1; i > 0; i-- {
		if entries[i].Weight > 0 {
			return entries[i].Item
		}
	}
	return entries[0].Item
}
