package service

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// saltAlphabet gives a 36^16 keyspace; gonanoid draws from crypto/rand, so
// salts are unpredictable, not just unique.
const (
	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	saltLength   = 16
)

func newSalt() (string, error) {
	return gonanoid.Generate(saltAlphabet, saltLength)
}
