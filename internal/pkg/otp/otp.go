// Package otp generates one-time verification codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const max = 1000000

// Generate returns a uniformly distributed six-digit decimal code,
// zero-padded, in ["000000","999999"].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
