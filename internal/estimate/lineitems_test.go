package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/domain"
)

func TestParseLineItems(t *testing.T) {
	text := `Apollo Hospital
Room Rent 2 days	8,000
Surgery Charges	₹35000
Pharmacy	5000.50
Gloves	2000
Misc consumables
Total	50000`

	items := ParseLineItems(text, []string{"gloves"})
	require.Len(t, items, 4)

	assert.Equal(t, "Room Rent 2 days", items[0].Description)
	assert.InDelta(t, 8000, items[0].Amount, 0.001)
	assert.Equal(t, domain.CategoryRoom, items[0].Category)

	assert.Equal(t, domain.CategoryProcedure, items[1].Category)
	assert.InDelta(t, 35000, items[1].Amount, 0.001)

	assert.Equal(t, domain.CategoryPharmacy, items[2].Category)
	assert.InDelta(t, 5000.50, items[2].Amount, 0.001)

	assert.Equal(t, domain.CategoryNonPayable, items[3].Category)
}

func TestParseLineItems_SkipsAggregateLines(t *testing.T) {
	items := ParseLineItems("Pharmacy	500\nGrand Total	500\nNet Payable	500", nil)
	require.Len(t, items, 1)
	assert.Equal(t, "Pharmacy", items[0].Description)
}

func TestParseLineItems_UncategorizedFallsToOther(t *testing.T) {
	items := ParseLineItems("Ambulance service	1200", nil)
	require.Len(t, items, 1)
	assert.Equal(t, domain.CategoryOther, items[0].Category)
}

func TestParseLineItems_EmptyInput(t *testing.T) {
	assert.Empty(t, ParseLineItems("", nil))
	assert.Empty(t, ParseLineItems("no amounts here", nil))
}

func TestRoomDailyRate(t *testing.T) {
	rate, days := roomDailyRate(domain.BillLineItem{Description: "Room Rent x 4 days", Amount: 12000})
	assert.InDelta(t, 3000, rate, 0.001)
	assert.Equal(t, 4, days)

	rate, days = roomDailyRate(domain.BillLineItem{Description: "ICU charges", Amount: 9000})
	assert.InDelta(t, 9000, rate, 0.001)
	assert.Equal(t, 1, days)
}
