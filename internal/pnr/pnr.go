// Package pnr generates booking reference codes.
package pnr

import (
	"crypto/rand"
	"fmt"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 6
)

// New returns a fresh 6-character alphanumeric reference. Uniqueness is
// enforced by the bookings table; 36^6 keeps the collision odds negligible.
func New() (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate pnr: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
