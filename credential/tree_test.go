package credential

import (
	"encoding/json"
	"testing"
)

type plainVerifier struct{}

func (plainVerifier) Verify(password, hash string) bool {
	return hash == "plain:"+password
}

func testTree() Group {
	return Group{
		"admin": User("plain:root-pw"),
		"team": Group{
			"alice": User("plain:alice-pw"),
			"bob":   User("plain:shared-pw"),
			"interns": Group{
				"carol": User("plain:shared-pw"),
			},
		},
	}
}

func TestLookup(t *testing.T) {
	tree := testTree()

	cases := []struct {
		name string
		path string
		hash string
		ok   bool
	}{
		{"top level user", "admin", "plain:root-pw", true},
		{"nested user", "team/alice", "plain:alice-pw", true},
		{"deeply nested user", "team/interns/carol", "plain:shared-pw", true},
		{"missing segment", "team/dave", "", false},
		{"missing branch", "crew/alice", "", false},
		{"group is not a user", "team", "", false},
		{"group leaf", "team/interns", "", false},
		{"path through a user", "admin/extra", "", false},
		{"empty path", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, ok := tree.Lookup(tc.path)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if hash != tc.hash {
				t.Fatalf("expected hash %q, got %q", tc.hash, hash)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tree := testTree()

	if _, ok := tree.Resolve("team"); !ok {
		t.Fatalf("expected group to resolve")
	}
	if _, ok := tree.Resolve("team/alice"); !ok {
		t.Fatalf("expected user to resolve")
	}
	if _, ok := tree.Resolve("team/missing"); ok {
		t.Fatalf("unexpected resolve")
	}
}

func TestSearchByName(t *testing.T) {
	tree := testTree()

	matches := tree.Search("alice", "alice-pw", plainVerifier{})
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	if matches[0].Path != "team/alice" {
		t.Fatalf("expected full path, got %q", matches[0].Path)
	}
	if matches[0].Hash != "plain:alice-pw" {
		t.Fatalf("expected stored hash, got %q", matches[0].Hash)
	}
}

func TestSearchWrongPassword(t *testing.T) {
	tree := testTree()

	if matches := tree.Search("alice", "wrong", plainVerifier{}); len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestSearchAnyNameTraversalOrder(t *testing.T) {
	tree := testTree()

	// bob and carol share a password; results come back in sorted
	// traversal order, so the first match is deterministic.
	matches := tree.Search("", "shared-pw", plainVerifier{})
	if len(matches) != 2 {
		t.Fatalf("expected two matches, got %d", len(matches))
	}
	if matches[0].Path != "team/bob" || matches[1].Path != "team/interns/carol" {
		t.Fatalf("unexpected order: %q, %q", matches[0].Path, matches[1].Path)
	}
}

func TestSearchDepthGuard(t *testing.T) {
	// A chain deeper than MaxDepth is skipped instead of recursing
	// without bound.
	leaf := Group{"user": User("plain:pw")}
	tree := leaf
	for i := 0; i < MaxDepth+4; i++ {
		tree = Group{"nested": tree}
	}

	if matches := tree.Search("user", "pw", plainVerifier{}); len(matches) != 0 {
		t.Fatalf("expected the deep branch to be skipped, got %d matches", len(matches))
	}
}

func TestGroupUnmarshalJSON(t *testing.T) {
	payload := []byte(`{
		"admin": "hash-a",
		"team": {
			"alice": "hash-b",
			"interns": {"carol": "hash-c"}
		}
	}`)

	var tree Group
	if err := json.Unmarshal(payload, &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if hash, ok := tree.Lookup("team/interns/carol"); !ok || hash != "hash-c" {
		t.Fatalf("expected nested user, got %q ok=%v", hash, ok)
	}
	if _, ok := tree.Lookup("team"); ok {
		t.Fatalf("expected group leaf to not resolve as user")
	}
}

func TestGroupUnmarshalJSONRejectsInvalid(t *testing.T) {
	var tree Group
	if err := json.Unmarshal([]byte(`{"admin": 42}`), &tree); err == nil {
		t.Fatalf("expected error for non-string leaf")
	}
}

func TestBcryptRoundTrip(t *testing.T) {
	hash, err := Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	verifier := Bcrypt{}
	if !verifier.Verify("secret", hash) {
		t.Fatalf("expected hash to verify")
	}
	if verifier.Verify("wrong", hash) {
		t.Fatalf("unexpected verify")
	}
}
