package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTotalAmount_PatternPriority(t *testing.T) {
	text := `Sub Total: 48,000
Total: 50,000
Net Payable: 45,000.50`

	v, ok := ParseTotalAmount(text)
	require.True(t, ok)
	assert.InDelta(t, 45000.50, v, 0.001)
}

func TestParseTotalAmount_BottomUpScan(t *testing.T) {
	text := `Total: 10,000
charges continued
Total: 12,500`

	v, ok := ParseTotalAmount(text)
	require.True(t, ok)
	assert.InDelta(t, 12500, v, 0.001)
}

func TestParseTotalAmount_LastNumberOnLine(t *testing.T) {
	v, ok := ParseTotalAmount("Grand Total (3 items): 1,23,456.78")
	require.True(t, ok)
	assert.InDelta(t, 123456.78, v, 0.001)
}

func TestParseTotalAmount_NotFound(t *testing.T) {
	_, ok := ParseTotalAmount("thank you for choosing our hospital")
	assert.False(t, ok)

	// A total keyword with no number on the line is not a hit.
	_, ok = ParseTotalAmount("Total amount due on discharge")
	assert.False(t, ok)
}

func TestSumNonPayables(t *testing.T) {
	text := `Surgical Gloves	2,000
Registration Fee	500
Syringe pack	150
Room Rent	8000`

	sum, hits := SumNonPayables(text, []string{"gloves", "registration", "syringe"})
	assert.InDelta(t, 2650, sum, 0.001)
	require.Len(t, hits, 3)
	assert.Equal(t, "gloves", hits[0].Keyword)
	assert.InDelta(t, 2000, hits[0].Amount, 0.001)
}

func TestSumNonPayables_WordBoundary(t *testing.T) {
	// "glove" must not match inside "foxglove".
	sum, hits := SumNonPayables("foxglove extract	900", []string{"glove"})
	assert.Zero(t, sum)
	assert.Empty(t, hits)
}

func TestSumNonPayables_NoKeywords(t *testing.T) {
	sum, hits := SumNonPayables("Gloves	2000", nil)
	assert.Zero(t, sum)
	assert.Empty(t, hits)
}
