// Package app wires tree enumeration, batch building and transfer execution
// into a single sequential run.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bft-labs/treeship/internal/batch"
	"github.com/bft-labs/treeship/internal/domain"
	"github.com/bft-labs/treeship/internal/walk"
)

// Transferrer flushes one completed batch to the destination.
type Transferrer interface {
	Run(ctx context.Context, b *batch.Batch) error
}

// Runner drives a full mirroring run. Enumeration, batch accumulation and
// transfer execution are strictly sequential: no batch is built while a
// transfer is in flight and no two transfers overlap.
type Runner struct {
	// Root is the source directory being mirrored.
	Root string

	// Threshold is the run-size threshold in bytes.
	Threshold uint64

	// Filter optionally excludes entries by relative path.
	Filter *walk.ExcludeFilter

	// Transfer flushes completed batches.
	Transfer Transferrer

	Log zerolog.Logger
}

// Run enumerates the source tree, accumulates entries into size-bounded
// batches and flushes each full batch before enumeration continues. The
// trailing partial batch, if any, is flushed once after enumeration ends; a
// tree with no eligible files performs no transfer at all. The first fatal
// transfer error aborts the run with no further batches attempted. The
// current batch's listing is released on every exit path.
func (r *Runner) Run(ctx context.Context) error {
	builder := batch.NewBuilder(r.Threshold)
	cur, err := batch.New()
	if err != nil {
		return err
	}
	defer func() { cur.Release() }()

	err = walk.Walk(ctx, r.Root, r.Filter, func(e domain.SourceEntry) error {
		r.Log.Debug().Str("path", e.RelPath).Uint64("bytes", e.SizeBytes).Msg("queued")
		full, aerr := builder.Append(cur, e)
		if aerr != nil {
			return aerr
		}
		if !full {
			return nil
		}
		r.Log.Debug().
			Int("files", cur.Count()).
			Uint64("bytes", cur.TotalBytes()).
			Msg("batch full")
		if terr := r.Transfer.Run(ctx, cur); terr != nil {
			return terr
		}
		cur.Release()
		next, nerr := batch.New()
		if nerr != nil {
			return nerr
		}
		cur = next
		return nil
	})
	if err != nil {
		return err
	}
	if cur.Empty() {
		return nil
	}
	return r.Transfer.Run(ctx, cur)
}
