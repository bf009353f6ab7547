package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("Secret123!")
	assert.NotEmpty(t, h)
	assert.NotEqual(t, "Secret123!", h)
	assert.True(t, CheckPassword("Secret123!", h))
	assert.False(t, CheckPassword("wrong", h))
	assert.False(t, CheckPassword("Secret123!", "not-a-hash"))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}
