package credential

import "golang.org/x/crypto/bcrypt"

// Verifier checks a plaintext password against a stored hash. It is an
// opaque capability: the tree never inspects hashes itself.
type Verifier interface {
	Verify(password, hash string) bool
}

// Bcrypt verifies bcrypt hashes.
type Bcrypt struct{}

// Verify reports whether password matches the bcrypt hash.
func (Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Hash generates a bcrypt hash suitable for storing in the users tree.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
