package pagegate

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintTag namespaces fingerprints so keys cannot collide with
// other users of the same store.
const fingerprintTag = "pagegate"

// Fingerprint derives the session-store key for a request from its
// stable client attributes. It is a pure function: the same client and
// session id always map to the same key, and the key is never sent to
// the client.
func Fingerprint(r Request) string {
	h := sha256.New()
	h.Write([]byte(fingerprintTag))
	h.Write([]byte(r.UserAgent))
	h.Write([]byte(r.RemoteAddr))
	h.Write([]byte(r.Route))
	h.Write([]byte(r.SessionID))
	return hex.EncodeToString(h.Sum(nil))
}
