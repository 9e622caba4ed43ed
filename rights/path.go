package rights

import "strings"

// IsParentPath reports whether parent is the same path as child or a
// literal ancestor of it. The segment boundary is checked so that
// "some/path" is a parent of "some/path/child" but not of
// "some/pathology". Empty paths are never parents and never children.
func IsParentPath(parent, child string) bool {
	if parent == "" || child == "" {
		return false
	}
	if parent == child {
		return true
	}
	if !strings.HasPrefix(child, parent) {
		return false
	}
	if strings.HasSuffix(parent, "/") {
		return true
	}
	return child[len(parent)] == '/'
}
