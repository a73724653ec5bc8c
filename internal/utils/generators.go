package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewPNR produces a 13-digit numeric ticket identifier, uniformly random in
// [10^12, 10^13). Uniqueness is the ledger's job, not this function's.
func NewPNR() string {
	span := big.NewInt(9_000_000_000_000)
	n, _ := rand.Int(rand.Reader, span)
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000_000)
}

// NewOTP produces a 6-digit numeric code, zero-padded.
func NewOTP() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1_000_000))
	return fmt.Sprintf("%06d", n.Int64())
}
