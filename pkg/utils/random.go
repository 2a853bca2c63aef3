package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns an uppercase alphanumeric string of length n,
// used for human-facing references such as order numbers.
func RandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(alphanum)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			b[i] = alphanum[0]
			continue
		}
		b[i] = alphanum[idx.Int64()]
	}
	return string(b)
}
