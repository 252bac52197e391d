package transfer

import (
	"os"
	"strings"
)

// baselineOptions is the fixed option set passed on every invocation:
// preserve symlinks, permissions, ownership, times and device/special files;
// no implied directory creation; no recursive descent (the listing already
// names every file). Operator-supplied options are appended after the
// baseline and are deliberately not validated against it, so a conflicting
// option from the operator wins by rsync's last-option rule.
var baselineOptions = []string{
	"--links",
	"--perms",
	"--times",
	"--group",
	"--owner",
	"--devices",
	"--specials",
	"--no-implied-dirs",
	"--no-recursive",
}

// rsyncArgs builds the argument vector for one transfer attempt. Arguments
// are constructed as a typed list, never a shell string.
func rsyncArgs(listing, src, dest, extraOptions string) []string {
	args := make([]string, 0, len(baselineOptions)+8)
	args = append(args, baselineOptions...)
	args = append(args, "--files-from="+listing)
	args = append(args, strings.Fields(extraOptions)...)
	args = append(args, withTrailingSep(src), dest)
	return args
}

// withTrailingSep ensures src is treated as the base directory for the
// relative paths in the listing.
func withTrailingSep(dir string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir
	}
	return dir + string(os.PathSeparator)
}
