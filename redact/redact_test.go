package redact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeptore/albumfetch/redact"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "one", input: "a", expected: "*"},
		{name: "three", input: "abc", expected: "***"},
		{name: "four", input: "abcd", expected: "a**d"},
		{name: "five", input: "abcde", expected: "a***e"},
		{name: "eight", input: "abcdefgh", expected: "ab****gh"},
		{name: "ten", input: "abcdefghij", expected: "ab******ij"},
		{name: "bearer token", input: "BQDx7Hc9aK2mPq", expected: "BQD********mPq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			actual := redact.String(tt.input)
			assert.Equal(t, tt.expected, actual)
			assert.Len(t, actual, len(tt.input))
		})
	}
}
