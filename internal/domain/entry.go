package domain

// SourceEntry is a single regular file discovered under the source root.
// Entries are produced once by the tree walk, appended to exactly one batch
// in traversal order, and discarded.
type SourceEntry struct {
	// RelPath is the slash-separated path relative to the source root.
	RelPath string

	// SizeBytes is the file size at the time it was observed by the walk.
	SizeBytes uint64
}
