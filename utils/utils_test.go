package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringInSlice(t *testing.T) {
	grants := []string{"dataset-a", "dataset-b"}

	assert.True(t, StringInSlice("dataset-a", grants))
	assert.False(t, StringInSlice("dataset-c", grants))
	assert.False(t, StringInSlice("dataset-a", nil))
}

func TestGetLeadingStringInBetweenSquareBrackets(t *testing.T) {
	bracket, rest := GetLeadingStringInBetweenSquareBrackets(`[200 OK] {"hits":{}}`)
	assert.Equal(t, "[200 OK]", bracket)
	assert.Equal(t, `{"hits":{}}`, rest)

	// a bracket further in belongs to the body, not a status marker
	bracket, rest = GetLeadingStringInBetweenSquareBrackets(`{"ids":["a"]}`)
	assert.Equal(t, "", bracket)
	assert.Equal(t, "", rest)

	bracket, rest = GetLeadingStringInBetweenSquareBrackets("[unterminated")
	assert.Equal(t, "", bracket)
	assert.Equal(t, "", rest)
}
