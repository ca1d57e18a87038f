package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("InOrder", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		var seen []int
		var sizes []int
		var snaps []ProgressSnapshot
		p.WithProgressCallback(func(s ProgressSnapshot) { snaps = append(snaps, s) })

		err = p.Process(context.Background(), items, func(_ context.Context, batch []int, index int) error {
			assert.Equal(t, len(sizes), index)
			sizes = append(sizes, len(batch))
			seen = append(seen, batch...)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 10, 5}, sizes)
		assert.Equal(t, items, seen)

		require.Len(t, snaps, 3)
		assert.Equal(t, 20, snaps[1].ProcessedItems)
		assert.InDelta(t, 80.0, snaps[1].PercentComplete, 0.001)
		assert.True(t, snaps[2].Complete())
		assert.Equal(t, 3, snaps[2].TotalBatches)
	})

	t.Run("Empty", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		calls := 0
		err := p.Process(context.Background(), nil, func(context.Context, []int, int) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, calls)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		boom := errors.New("disk full")
		calls := 0
		err := p.Process(context.Background(), items, func(_ context.Context, _ []int, index int) error {
			calls++
			if index == 1 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "batch 1 failed")
		assert.Equal(t, 2, calls)
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.Process(ctx, items, func(context.Context, []int, int) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		assert.ErrorIs(t, p.Process(context.Background(), items, nil), ErrNilCallback)
	})
}

func TestNewProcessor(t *testing.T) {
	for _, size := range []int{0, -1, MaxBatchSize + 1} {
		_, err := NewProcessor[string](size)
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
	}

	p, err := NewProcessor[string](DefaultBatchSize)
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, p.BatchSize())
	assert.Equal(t, 3, p.Batches(201))
	assert.Zero(t, p.Batches(0))
}

func TestProgress(t *testing.T) {
	p := NewProgress(0, 0, 10)
	snap := p.Snapshot()
	assert.Zero(t, snap.PercentComplete)
	assert.True(t, snap.Complete())

	p = NewProgress(30, 3, 10)
	p.AddProcessed(10)
	snap = p.Snapshot()
	assert.Equal(t, 1, snap.ProcessedBatches)
	assert.False(t, snap.Complete())
	assert.GreaterOrEqual(t, snap.Elapsed.Nanoseconds(), int64(0))
}
