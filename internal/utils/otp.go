package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomNumericCode returns a fixed-length numeric one-time code drawn
// from a cryptographically strong random source.  Leading zeros are
// preserved, so the result is always exactly n digits.
func RandomNumericCode(n int) (string, error) {
	if n <= 0 || n > 18 {
		return "", fmt.Errorf("invalid code length %d", n)
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
