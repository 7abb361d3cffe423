package rdesc

import "github.com/petuhovskiy/soundpool/internal/wrand"

// Wrand is a weighted list as it appears in JSON:
// [{"Weight": 3, "Item": "a"}, {"Weight": 1, "Item": "b"}].
type Wrand[T comparable] []WrandItem[T]

type WrandItem[T comparable] struct {
	Weight float64
	Item   T
}

func (w Wrand[T]) Entries() []wrand.Entry[T] {
	entries := make([]wrand.Entry[T], len(w))
	for i, item := range w {
		entries[i] = wrand.Entry[T]{Item: item.Item, Weight: item.Weight}
	}
	return entries
}

func (w Wrand[T]) Collection() (*wrand.Collection[T], error) {
	return wrand.FromEntries(w.Entries())
}

// Pick draws one item by weight.
func (w Wrand[T]) Pick(r wrand.Rand) (T, error) {
	c, err := w.Collection()
	if err != nil {
		var zero T
		return zero, err
	}
	return c.DrawWeighted(r)
}
