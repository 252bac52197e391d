// Package walk enumerates the regular files under a source root as a lazy,
// finite sequence of entries in traversal order. The sequence is produced
// once per call; enumerating again re-walks the tree.
package walk

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/bft-labs/treeship/internal/domain"
)

// EntryFunc receives one eligible file per call, in traversal order.
// Returning a non-nil error stops the walk and propagates the error.
type EntryFunc func(domain.SourceEntry) error

// Walk visits every entry under root and calls fn for each eligible regular
// file with its root-relative slash path and size.
//
// The root itself is never emitted. Directories, symlinks and special files
// are skipped. Entries whose relative path matches filter are skipped before
// any metadata is read. Files whose metadata cannot be read are skipped
// silently: large trees are expected to mutate during a long walk, and a
// vanished file is not an error. Unreadable subdirectories are likewise
// skipped rather than failing the run.
func Walk(ctx context.Context, root string, filter *ExcludeFilter, fn EntryFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if path == root {
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if filter.Match(rel) {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil {
			// Vanished between readdir and stat.
			return nil
		}
		return fn(domain.SourceEntry{RelPath: rel, SizeBytes: uint64(info.Size())})
	})
}
