package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/portalgun/internal/engine"
)

// Batch size bounds.
const (
	DefaultBatchSize = 100
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// Batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// Callback handles one batch. index is 0-based.
type Callback[T any] func(ctx context.Context, batch []T, index int) error

// ProgressCallback is invoked after each batch with a snapshot of progress.
type ProgressCallback func(ProgressSnapshot)

// Processor splits a slice into consecutive batches and hands them to a
// Callback in order. Batch boundaries are the page windows of size batchSize.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor returns a processor for batchSize items per batch.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// WithProgressCallback sets the progress callback.
func (p *Processor[T]) WithProgressCallback(fn ProgressCallback) *Processor[T] {
	p.onProgress = fn
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Batches returns the number of batches needed for total items.
func (p *Processor[T]) Batches(total int) int {
	return engine.TotalPages(total, p.batchSize)
}

// Process runs fn over items batch by batch and stops at the first error or
// when ctx is done. An empty slice is not an error and invokes fn zero times.
func (p *Processor[T]) Process(ctx context.Context, items []T, fn Callback[T]) error {
	if fn == nil {
		return ErrNilCallback
	}

	total := p.Batches(len(items))
	progress := NewProgress(len(items), total, p.batchSize)

	for index := range total {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := engine.Slice(items, engine.PageWindow{Page: index + 1, Size: p.batchSize})
		if err := fn(ctx, batch, index); err != nil {
			return fmt.Errorf("batch %d failed: %w", index, err)
		}

		progress.AddProcessed(len(batch))
		if p.onProgress != nil {
			p.onProgress(progress.Snapshot())
		}
	}
	return nil
}
