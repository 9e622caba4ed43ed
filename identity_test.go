package pagegate

import "testing"

func TestIdentitySplits(t *testing.T) {
	cases := []struct {
		identity Identity
		username string
		group    string
	}{
		{"team/alice", "alice", "team"},
		{"team/interns/carol", "carol", "team/interns"},
		{"admin", "admin", ""},
		{"", "", ""},
	}

	for _, tc := range cases {
		if got := tc.identity.Username(); got != tc.username {
			t.Fatalf("%q: expected username %q, got %q", tc.identity, tc.username, got)
		}
		if got := tc.identity.Group(); got != tc.group {
			t.Fatalf("%q: expected group %q, got %q", tc.identity, tc.group, got)
		}
		info := PresentationInfo(tc.identity)
		if info.Username != tc.username || info.Group != tc.group {
			t.Fatalf("%q: unexpected presentation %+v", tc.identity, info)
		}
	}
}

func TestIdentityAnonymous(t *testing.T) {
	if !Anonymous.IsAnonymous() {
		t.Fatalf("expected empty identity to be anonymous")
	}
	if Identity("team/alice").IsAnonymous() {
		t.Fatalf("unexpected anonymous")
	}
}
