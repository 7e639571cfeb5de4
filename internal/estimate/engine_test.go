package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/domain"
	"claimlens/internal/intent"
)

const sampleBill = `Apollo Hospital
Patient Name: Ramesh Kumar
Room Rent 2 days	8000
Surgery Charges	35000
Pharmacy	5000
Gloves	2000
Total	50000`

func float64Ptr(v float64) *float64 { return &v }

func standardRule() *domain.PolicyRule {
	return &domain.PolicyRule{
		Insurer:              "Acme Health",
		Plan:                 "Gold",
		CoveragePercent:      0.8,
		Deductible:           1000,
		AnnualLimit:          500000,
		RoomRentLimit:        nil,
		CoPayPercent:         0.1,
		NonPayableKeywords:   []string{"gloves", "syringe", "registration"},
		ProcessingDescriptor: "cashless claims processed within 24 hours",
	}
}

func TestEstimate_FullDeductionChain(t *testing.T) {
	est := Estimate(sampleBill, standardRule(), intent.IntentCoverage)

	// 50,000 - 2,000 non-payable - 1,000 deductible = 47,000
	// x 0.8 coverage = 37,600; x 0.9 after co-pay = 33,840
	assert.InDelta(t, 33840, est.Conservative, 0.01)
	assert.InDelta(t, 33840, est.Optimistic, 0.01)
	assert.Equal(t, domain.EstimateOK, est.Status)
	assert.Equal(t, domain.Timeline24To48h, est.TimelineBucket)

	require.Len(t, est.Deductions, 4)
	assert.Equal(t, "non-payable items excluded", est.Deductions[0].Reason)
	assert.InDelta(t, 2000, est.Deductions[0].Amount, 0.01)
	assert.Equal(t, "policy deductible", est.Deductions[1].Reason)
	assert.InDelta(t, 1000, est.Deductions[1].Amount, 0.01)
	assert.Equal(t, "coverage limited by policy percentage", est.Deductions[2].Reason)
	assert.InDelta(t, 9400, est.Deductions[2].Amount, 0.01)
	assert.Equal(t, "co-payment borne by insured", est.Deductions[3].Reason)
	assert.InDelta(t, 3760, est.Deductions[3].Amount, 0.01)
}

func TestEstimate_RoomRentOverLimit(t *testing.T) {
	rule := standardRule()
	rule.RoomRentLimit = float64Ptr(2000) // billed at 4,000/day

	est := Estimate(sampleBill, rule, intent.IntentCoverage)

	// Ratio 0.5: conservative scales the whole base (47,000 -> 23,500),
	// optimistic removes only the disallowed room share (47,000 - 4,000).
	assert.InDelta(t, 16920, est.Conservative, 0.01) // 23,500 x 0.8 x 0.9
	assert.InDelta(t, 30960, est.Optimistic, 0.01)   // 43,000 x 0.8 x 0.9
	assert.LessOrEqual(t, est.Conservative, est.Optimistic)

	var roomDeduction *domain.Deduction
	for i := range est.Deductions {
		if est.Deductions[i].Reason == "room rent proportionate deduction" {
			roomDeduction = &est.Deductions[i]
		}
	}
	require.NotNil(t, roomDeduction)
	assert.InDelta(t, 4000, roomDeduction.Amount, 0.01)
}

func TestEstimate_RoomRentUnlimitedIsNoOp(t *testing.T) {
	withLimit := standardRule()
	withLimit.RoomRentLimit = float64Ptr(100000) // far above the billed rate
	unlimited := standardRule()

	a := Estimate(sampleBill, withLimit, intent.IntentCoverage)
	b := Estimate(sampleBill, unlimited, intent.IntentCoverage)
	assert.Equal(t, b.Conservative, a.Conservative)
	assert.Equal(t, b.Optimistic, a.Optimistic)
}

func TestEstimate_AnnualLimitCapsBothBounds(t *testing.T) {
	rule := standardRule()
	rule.AnnualLimit = 20000

	est := Estimate(sampleBill, rule, intent.IntentCoverage)
	assert.InDelta(t, 20000, est.Conservative, 0.01)
	assert.InDelta(t, 20000, est.Optimistic, 0.01)

	last := est.Deductions[len(est.Deductions)-1]
	assert.Equal(t, "annual limit cap", last.Reason)
	assert.InDelta(t, 13840, last.Amount, 0.01)
}

func TestEstimate_ConservativeNeverExceedsOptimistic(t *testing.T) {
	bill := "Room Rent 2 days	8000\nGloves	500\nTotal	8500"
	rule := standardRule()
	rule.Deductible = 6000
	rule.RoomRentLimit = float64Ptr(2000)
	rule.NonPayableKeywords = []string{"gloves"}

	est := Estimate(bill, rule, intent.IntentCoverage)
	assert.LessOrEqual(t, est.Conservative, est.Optimistic)
	assert.GreaterOrEqual(t, est.Conservative, 0.0)
}

func TestEstimate_TotalOnlyDegradation(t *testing.T) {
	bill := "Hospital bill summary\nNet Payable: 10,000"
	est := Estimate(bill, standardRule(), intent.IntentCoverage)

	assert.Equal(t, domain.EstimateTotalOnly, est.Status)
	// 10,000 - 1,000 deductible = 9,000 x 0.8 x 0.9 = 6,480
	assert.InDelta(t, 6480, est.Conservative, 0.01)
	assert.InDelta(t, 6480, est.Optimistic, 0.01)
}

func TestEstimate_NoTotalLocatable(t *testing.T) {
	est := Estimate("thank you for visiting", standardRule(), intent.IntentCoverage)

	assert.Equal(t, domain.EstimateNoTotal, est.Status)
	assert.Zero(t, est.Conservative)
	assert.Zero(t, est.Optimistic)
	assert.Equal(t, domain.TimelineUnknown, est.TimelineBucket)
	assert.Empty(t, est.Deductions)
}

func TestEstimate_Deterministic(t *testing.T) {
	rule := standardRule()
	rule.RoomRentLimit = float64Ptr(2000)

	first := Estimate(sampleBill, rule, intent.IntentBreakdown)
	second := Estimate(sampleBill, rule, intent.IntentBreakdown)
	assert.Equal(t, first, second)
}

func TestAnalyzeRoom(t *testing.T) {
	rule := standardRule()
	rule.RoomRentLimit = float64Ptr(2000)

	a := AnalyzeRoom(sampleBill, rule)
	require.True(t, a.Found)
	assert.InDelta(t, 4000, a.DailyRate, 0.01)
	assert.Equal(t, 2, a.Days)
	assert.InDelta(t, 8000, a.Amount, 0.01)
	assert.True(t, a.OverLimit)

	rule.RoomRentLimit = nil
	a = AnalyzeRoom(sampleBill, rule)
	require.True(t, a.Found)
	assert.False(t, a.OverLimit)
	assert.Nil(t, a.Limit)
}

func TestAnalyzeRoom_NoRoomCharges(t *testing.T) {
	a := AnalyzeRoom("Pharmacy	500\nTotal	500", standardRule())
	assert.False(t, a.Found)
}
