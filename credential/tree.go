package credential

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// MaxDepth bounds tree traversal so malformed configuration cannot
// recurse without limit.
const MaxDepth = 64

// Node is one entry in the user/group tree: either a Group of named
// children or a User holding a password hash.
type Node interface {
	node()
}

// User is a terminal node: a stored password hash.
type User string

// Group is an internal node mapping names to child nodes.
type Group map[string]Node

func (User) node()  {}
func (Group) node() {}

// Match is one result of a credential search.
type Match struct {
	Path string
	Hash string
}

// Lookup walks a slash-delimited path through the tree and returns the
// hash stored at its leaf. A path with a missing segment, or whose
// final segment is itself a group, does not resolve.
func (g Group) Lookup(path string) (string, bool) {
	node, ok := g.Resolve(path)
	if !ok {
		return "", false
	}
	user, ok := node.(User)
	if !ok {
		return "", false
	}
	return string(user), true
}

// Resolve walks a slash-delimited path and returns the node it names,
// group or user.
func (g Group) Resolve(path string) (Node, bool) {
	if path == "" {
		return nil, false
	}
	var current Node = g
	for _, segment := range strings.Split(path, "/") {
		group, ok := current.(Group)
		if !ok {
			return nil, false
		}
		current, ok = group[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Search walks the whole tree and returns every user whose name equals
// name (empty matches any name) and whose hash verifies against
// password. Children are visited in sorted-name order, so results and
// in particular the first match are deterministic. Branches deeper than
// MaxDepth are skipped.
func (g Group) Search(name, password string, verifier Verifier) []Match {
	var matches []Match
	g.search(name, password, verifier, "", 0, &matches)
	return matches
}

func (g Group) search(name, password string, verifier Verifier, prefix string, depth int, matches *[]Match) {
	if depth >= MaxDepth {
		return
	}
	names := make([]string, 0, len(g))
	for childName := range g {
		names = append(names, childName)
	}
	sort.Strings(names)

	for _, childName := range names {
		path := childName
		if prefix != "" {
			path = prefix + "/" + childName
		}
		switch child := g[childName].(type) {
		case Group:
			child.search(name, password, verifier, path, depth+1, matches)
		case User:
			if name != "" && name != childName {
				continue
			}
			if !verifier.Verify(password, string(child)) {
				continue
			}
			*matches = append(*matches, Match{Path: path, Hash: string(child)})
		}
	}
}

// UnmarshalJSON decodes a nested configuration object: string values
// become users, object values become subgroups.
func (g *Group) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Group, len(raw))
	for name, value := range raw {
		node, err := unmarshalNode(value)
		if err != nil {
			return fmt.Errorf("credential: entry %q: %w", name, err)
		}
		out[name] = node
	}
	*g = out
	return nil
}

func unmarshalNode(data []byte) (Node, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var child Group
		if err := json.Unmarshal(data, &child); err != nil {
			return nil, err
		}
		return child, nil
	}
	var hash string
	if err := json.Unmarshal(data, &hash); err != nil {
		return nil, err
	}
	return User(hash), nil
}
