package pagegate

import "strings"

// Identity is a slash-delimited group/user path naming an authenticated
// principal, like "team/alice". The empty Identity is anonymous.
type Identity string

// Anonymous is the identity of an unauthenticated request.
const Anonymous Identity = ""

// IsAnonymous reports whether the identity names no principal.
func (id Identity) IsAnonymous() bool {
	return id == Anonymous
}

// Username returns the leaf segment of the identity.
func (id Identity) Username() string {
	path := string(id)
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Group returns the identity path without its leaf segment, or "" for a
// top-level user.
func (id Identity) Group() string {
	path := string(id)
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}

// Presentation is the split form of an identity for template use.
type Presentation struct {
	Username string
	Group    string
}

// PresentationInfo splits an identity into its username and parent
// group. Pure; anonymous yields two empty strings.
func PresentationInfo(id Identity) Presentation {
	return Presentation{Username: id.Username(), Group: id.Group()}
}
