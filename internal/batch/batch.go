// Package batch groups enumerated files into size-bounded batches backed by
// a transient listing file, the file-selection input handed to the transfer
// tool.
package batch

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bft-labs/treeship/internal/domain"
)

// Batch is an ordered accumulation of relative paths with a running byte
// total, written through to a temporary listing file as entries arrive.
// It maintains the invariant that TotalBytes equals the sum of the sizes of
// every appended entry. A batch is owned by a single goroutine for its whole
// lifetime and must be Released on every exit path.
type Batch struct {
	file *os.File
	w    *bufio.Writer

	count      int
	totalBytes uint64
	released   bool
}

// New creates an empty batch with a fresh backing listing file.
func New() (*Batch, error) {
	f, err := os.CreateTemp("", "treeship-*.list")
	if err != nil {
		return nil, fmt.Errorf("create batch listing: %w", err)
	}
	return &Batch{file: f, w: bufio.NewWriter(f)}, nil
}

// Append records the entry's relative path in the listing and adds its size
// to the running total.
func (b *Batch) Append(e domain.SourceEntry) error {
	if _, err := b.w.WriteString(e.RelPath); err != nil {
		return fmt.Errorf("write batch listing: %w", err)
	}
	if err := b.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write batch listing: %w", err)
	}
	b.count++
	b.totalBytes += e.SizeBytes
	return nil
}

// Count returns the number of entries appended so far.
func (b *Batch) Count() int {
	return b.count
}

// Empty returns true if no entries have been appended.
func (b *Batch) Empty() bool {
	return b.count == 0
}

// TotalBytes returns the accumulated size of all appended entries.
func (b *Batch) TotalBytes() uint64 {
	return b.totalBytes
}

// ListingPath returns the path of the backing listing file.
func (b *Batch) ListingPath() string {
	return b.file.Name()
}

// Finalize flushes and syncs the listing so its contents are visible to an
// external process. Appending after Finalize is allowed; a retry of the same
// batch reuses the already-final listing.
func (b *Batch) Finalize() error {
	if err := b.w.Flush(); err != nil {
		return fmt.Errorf("flush batch listing: %w", err)
	}
	if err := b.file.Sync(); err != nil {
		return fmt.Errorf("sync batch listing: %w", err)
	}
	return nil
}

// Release closes and removes the backing listing file. It is idempotent and
// safe to call on every exit path.
func (b *Batch) Release() {
	if b.released {
		return
	}
	b.released = true
	_ = b.file.Close()
	_ = os.Remove(b.file.Name())
}
