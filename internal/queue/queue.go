// Package queue holds the play order used by the shuffle and sequential
// selection modes.
package queue

import (
	"errors"

	"github.com/petuhovskiy/soundpool/internal/wrand"
)

var ErrEmptyQueue = errors.New("queue is empty")

// Queue is a FIFO consumed front to back. It never refills itself, the
// caller decides when and how.
type Queue[T comparable] struct {
	items []T
	head  int
}

func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

func (q *Queue[T]) Reset() {
	q.items = q.items[:0]
	q.head = 0
}

// Dequeue pops the front item.
func (q *Queue[T]) Dequeue() (T, error) {
	if q.Len() == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}

	item := q.items[q.head]
	q.head++
	return item, nil
}

// RefillSequential replaces the contents with items in the given order.
func (q *Queue[T]) RefillSequential(items []T) {
	q.Reset()
	q.items = append(q.items, items...)
}

// RefillShuffled replaces the contents with a random permutation of items.
// When avoidFirst is set and there are at least two items, the first
// element of the permutation differs from *avoidFirst.
func (q *Queue[T]) RefillShuffled(items []T, r wrand.Rand, avoidFirst *T) {
	q.RefillSequential(items)

	perm := q.items
	for i := len(perm) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	if avoidFirst != nil && len(perm) > 1 && perm[0] == *avoidFirst {
		j := 1 + r.IntN(len(perm)-1)
		perm[0], perm[j] = perm[j], perm[0]
	}
}
