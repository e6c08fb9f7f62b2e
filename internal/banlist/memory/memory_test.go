package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("carol", "mallory")

	assert.True(t, s.IsBanned("carol"))
	assert.True(t, s.IsBanned("mallory"))
	assert.False(t, s.IsBanned("alice"))
	assert.Equal(t, 2, s.Len())
}

func TestEmptySet(t *testing.T) {
	s := New()

	assert.False(t, s.IsBanned("anyone"))
	assert.Equal(t, 0, s.Len())
}

func TestDuplicateIDs(t *testing.T) {
	s := New("carol", "carol")

	assert.True(t, s.IsBanned("carol"))
	assert.Equal(t, 1, s.Len())
}
