package queue

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petuhovskiy/soundpool/internal/wrand"
)

func drain[T comparable](t *testing.T, q *Queue[T]) []T {
	t.Helper()
	var out []T
	for q.Len() > 0 {
		item, err := q.Dequeue()
		require.NoError(t, err)
		out = append(out, item)
	}
	return out
}

func TestDequeue_Empty(t *testing.T) {
	var q Queue[string]
	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestRefillSequential(t *testing.T) {
	var q Queue[string]
	items := []string{"A", "B", "C"}
	q.RefillSequential(items)
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, []string{"A", "B", "C"}, drain(t, &q))

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)

	// refill clears leftovers
	q.RefillSequential(items)
	_, _ = q.Dequeue()
	q.RefillSequential(items)
	assert.Equal(t, []string{"A", "B", "C"}, drain(t, &q))
}

func TestRefillShuffled_DoesNotAliasInput(t *testing.T) {
	var q Queue[string]
	items := []string{"A", "B", "C"}
	q.RefillShuffled(items, wrand.NewRand(9), nil)
	assert.Equal(t, []string{"A", "B", "C"}, items)
}

func TestRefillShuffled_Permutation(t *testing.T) {
	var q Queue[int]
	items := []int{1, 2, 3, 4, 5, 6, 7}
	r := wrand.NewRand(77)

	for round := 0; round < 20; round++ {
		q.RefillShuffled(items, r, nil)
		got := drain(t, &q)
		sort.Ints(got)
		assert.Equal(t, items, got)
	}
}

func TestRefillShuffled_AvoidFirst(t *testing.T) {
	var q Queue[string]
	items := []string{"A", "B", "C"}
	r := wrand.NewRand(1)

	for i := 0; i < 200; i++ {
		avoid := items[i%len(items)]
		q.RefillShuffled(items, r, &avoid)
		first, err := q.Dequeue()
		require.NoError(t, err)
		assert.NotEqual(t, avoid, first)
		assert.Equal(t, 2, q.Len())
	}
}

func TestRefillShuffled_SingleItemIgnoresAvoid(t *testing.T) {
	var q Queue[string]
	avoid := "A"
	q.RefillShuffled([]string{"A"}, wrand.NewRand(1), &avoid)
	assert.Equal(t, []string{"A"}, drain(t, &q))
}
