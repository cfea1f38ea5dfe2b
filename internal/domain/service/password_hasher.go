// Package service defines interfaces for stateless domain collaborators.
package service

// PasswordHasher hashes account passwords and verifies them against a stored hash.
// Implementations own the algorithm and its salt; the hash is opaque to callers.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of the plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password produces the given hash.
	// A malformed hash never matches.
	Check(password, hash string) bool
}
