package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// InputDigest fingerprints a validation query's raw payload so history
// records can identify repeated submissions without storing the payload.
type InputDigest Hash

func ComputeInputDigest(payload []byte) InputDigest {
	return InputDigest(NewHash(payload))
}

func (h InputDigest) String() string { return Hash(h).String() }
