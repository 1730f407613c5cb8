package id

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// Generator supplies process-unique string identifiers.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string { return f() }

// Random produces 16-character alphanumeric IDs. Questions and options use it.
var Random Generator = GeneratorFunc(GenerateID)

// UUID produces RFC 4122 v4 identifiers. Test sessions use it.
var UUID Generator = GeneratorFunc(func() string { return uuid.NewString() })

// GenerateID creates a unique 16-character alphanumeric ID.
func GenerateID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
