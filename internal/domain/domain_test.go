package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	cases := []struct {
		username string
		want     bool
	}{
		{"carlos_runner", true},
		{"abc", true},
		{"ab_12", true},
		{"A1_", true},
		{"ab", false},                      // too short
		{"abcdefghijklmnopqrstu", false},   // 21 chars
		{"maría", false},                   // non-ascii
		{"user name", false},               // space
		{"user-name", false},               // dash
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidUsername(tc.username), "username %q", tc.username)
	}
}

func TestParseDecimal(t *testing.T) {
	assert.Equal(t, 80.0, ParseDecimal("80"))
	assert.Equal(t, 42.2, ParseDecimal("42.2"))
	assert.Equal(t, 10.0, ParseDecimal(" 10 "))
	assert.Equal(t, 0.0, ParseDecimal(""))
	assert.Equal(t, 0.0, ParseDecimal("N/A"))
	assert.Equal(t, 0.0, ParseDecimal("10km"))
	assert.Equal(t, -5.0, ParseDecimal("-5"))
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("title", "title is required")
	v.Add("date", "date is required")
	v.Add("title", "overwrite attempt") // first message wins

	err := v.OrNil()
	assert.Error(t, err)
	ve, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, "title is required", ve.Fields["title"])
	// deterministic message, fields sorted
	assert.Equal(t, "validation failed: date: date is required; title: title is required", err.Error())
}

func TestEventCapacityHelpers(t *testing.T) {
	e := Event{Participants: 999, MaxParticipants: 1000}
	assert.Equal(t, 1, e.Remaining())
	assert.False(t, e.IsFull())

	e.Participants++
	assert.True(t, e.IsFull())
	assert.Equal(t, 0, e.Remaining())
}

func TestValidCategoryAndDifficulty(t *testing.T) {
	assert.True(t, ValidCategory("RUNNING"))
	assert.True(t, ValidCategory("OTHER"))
	assert.False(t, ValidCategory("running")) // enums are case sensitive
	assert.False(t, ValidCategory("YOGA"))

	assert.True(t, ValidDifficulty("Beginner"))
	assert.False(t, ValidDifficulty("beginner"))
	assert.False(t, ValidDifficulty("Expert"))
}
