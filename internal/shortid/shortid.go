// Package shortid generates the short, human-shareable IDs that key stored URLs.
package shortid

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabet is the set of characters a short ID is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const DefaultLength = 5

var ErrInvalidLength = errors.New("shortid: length must be positive")

type Generator struct {
	Length int
}

func NewGenerator(length int) (*Generator, error) {
	if length < 1 {
		return nil, ErrInvalidLength
	}
	return &Generator{Length: length}, nil
}

// New returns a fresh ID of g.Length characters.
func (g *Generator) New() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	id := make([]byte, g.Length)
	for i := range id {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		id[i] = Alphabet[n.Int64()]
	}
	return string(id), nil
}

// Valid reports whether id could have been produced by g.
func (g *Generator) Valid(id string) bool {
	if len(id) != g.Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
