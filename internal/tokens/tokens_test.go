package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single rune", "a", 1},
		{"exactly four", "abcd", 1},
		{"five rounds up", "abcde", 2},
		{"multibyte counts runes", "héllo wörld", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Estimate(tc.text))
		})
	}
}

func TestEstimateAll(t *testing.T) {
	assert.Equal(t, 3, EstimateAll("abcd", "abcde"))
	assert.Equal(t, 0, EstimateAll())
}
