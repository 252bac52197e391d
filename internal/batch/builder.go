package batch

import "github.com/bft-labs/treeship/internal/domain"

// Builder appends entries to batches and decides when a batch is full.
type Builder struct {
	threshold uint64
}

// NewBuilder creates a builder that flags a batch for flushing once its
// accumulated size reaches thresholdBytes.
func NewBuilder(thresholdBytes uint64) *Builder {
	return &Builder{threshold: thresholdBytes}
}

// Append adds the entry to the batch and reports whether the batch should be
// flushed. The entry is always included before the threshold is checked: no
// entry is ever split or deferred to the next batch, so a batch may exceed
// the threshold by up to the size of its final entry (or by more, when a
// single file is larger than the threshold on its own).
func (bu *Builder) Append(b *Batch, e domain.SourceEntry) (bool, error) {
	if err := b.Append(e); err != nil {
		return false, err
	}
	return bu.threshold > 0 && b.TotalBytes() >= bu.threshold, nil
}
