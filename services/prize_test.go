package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPrizePool(t *testing.T) {
	testCases := []struct {
		name     string
		total    int
		shares   []int
		expected []int
	}{
		{
			name:     "clean split 50/30/20",
			total:    1000,
			shares:   []int{50, 30, 20},
			expected: []int{500, 300, 200},
		},
		{
			name:     "rounding remainder goes to first place",
			total:    101,
			shares:   []int{50, 30, 20},
			expected: []int{51, 30, 20},
		},
		{
			name:     "single winner takes everything",
			total:    777,
			shares:   []int{50},
			expected: []int{777},
		},
		{
			name:     "zero pool pays nothing",
			total:    0,
			shares:   []int{50, 30, 20},
			expected: []int{0, 0, 0},
		},
		{
			name:     "negative pool pays nothing",
			total:    -100,
			shares:   []int{50, 50},
			expected: []int{0, 0},
		},
		{
			name:     "no shares no payouts",
			total:    500,
			shares:   nil,
			expected: []int{},
		},
		{
			name:     "negative share treated as zero",
			total:    100,
			shares:   []int{60, -10, 40},
			expected: []int{60, 0, 40},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payouts := SplitPrizePool(tc.total, tc.shares)
			assert.Equal(t, tc.expected, payouts)
		})
	}
}

func TestSplitPrizePoolConservation(t *testing.T) {
	// Сумма выплат всегда равна фонду, каким бы ни было округление.
	for _, total := range []int{1, 7, 99, 100, 101, 12345} {
		payouts := SplitPrizePool(total, defaultPrizeShares)
		sum := 0
		for _, p := range payouts {
			sum += p
		}
		assert.Equal(t, total, sum, "pool %d must be fully distributed", total)
	}
}
