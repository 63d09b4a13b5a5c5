package random

import (
	"crypto/rand"
	"math/big"
)

// Random abstracts randomness so tests can make draws deterministic
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String draws length characters from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand
type CryptoRandom struct{}

// New creates a CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	limit := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return 0
	}
	return int(v.Int64())
}

// String draws length characters from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
