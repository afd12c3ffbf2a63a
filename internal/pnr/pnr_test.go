package pnr

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref, err := New()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, ref)
		seen[ref] = struct{}{}
	}
	// 1000 draws from a 36^6 space should not collide
	assert.Len(t, seen, 1000)
}
