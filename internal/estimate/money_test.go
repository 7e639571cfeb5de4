package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{500, "₹500.00"},
		{1000, "₹1,000.00"},
		{33840, "₹33,840.00"},
		{100000, "₹1,00,000.00"},
		{1234567.89, "₹12,34,567.89"},
		{100000000, "₹10,00,00,000.00"},
		{-12.5, "-₹12.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRupees(tc.in), "input %v", tc.in)
	}
}
