package dice

import (
	"crypto/rand"
	"math/big"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: values are uniformly distributed in [min, max) for any max > min.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Next is in [min, max), or min when max <= min.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Next returns a cryptographically secure random int in [min, max).
//
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Next(min, max int) int {
	if max <= min {
		return min
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return min + int(val.Int64())
}
