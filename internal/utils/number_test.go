package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5000", "5000"},
		{" 5000 ", "5000"},
		{"5,000", "5000"},
		{"1,234,567.50", "1234567.5"},
		{"4999,5", "4999.5"},
		{"HK$ 5 000", "5000"},
		{"-200", "-200"},
		{"", "0"},
		{"abc", "0"},
		{"-", "0"},
		{"1.2.3", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in).String())
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 3, ParseCount("3"))
	assert.Equal(t, 2, ParseCount("2 pcs"))
	assert.Equal(t, 1, ParseCount("1.9"))
	assert.Equal(t, 0, ParseCount("n/a"))
	assert.Equal(t, 0, ParseCount(""))
}
