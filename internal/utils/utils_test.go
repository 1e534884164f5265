package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecordIDFormat(t *testing.T) {
	id := NewRecordID(PrefixTrip)

	assert.True(t, strings.HasPrefix(id, "TR"))
	// prefix + 14-digit timestamp + "-" + 8-char fragment
	assert.Len(t, id, len(PrefixTrip)+14+1+8)
}

func TestNewRecordIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRecordID(PrefixPayment)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
