package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{
			name:     "full address",
			address:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			expected: "0xf39Fd6..2266",
		},
		{
			name:     "short value passes through",
			address:  "0xabc",
			expected: "0xabc",
		},
		{
			name:     "empty",
			address:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortAddress(tt.address))
		})
	}
}

func TestShortHash(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		expected string
	}{
		{
			name:     "full hash",
			hash:     "0xabc0000000000000000000000000000000000000000000000000000000000001",
			expected: "0xabc00000..000001",
		},
		{
			name:     "short value passes through",
			hash:     "0xabc",
			expected: "0xabc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortHash(tt.hash))
		})
	}
}
