package walk

import "regexp"

// ExcludeFilter skips entries whose source-relative path matches a regular
// expression. Matching is unanchored and case-sensitive, applied to the
// slash-separated relative path, so a pattern matching a directory name also
// matches every path beneath that directory.
type ExcludeFilter struct {
	re *regexp.Regexp
}

// NewExcludeFilter compiles pattern into a filter. An empty pattern yields a
// nil filter, which matches nothing.
func NewExcludeFilter(pattern string) (*ExcludeFilter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ExcludeFilter{re: re}, nil
}

// Match reports whether relPath should be excluded. A nil filter excludes
// nothing.
func (f *ExcludeFilter) Match(relPath string) bool {
	if f == nil {
		return false
	}
	return f.re.MatchString(relPath)
}
