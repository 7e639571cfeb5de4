package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/domain"
	"claimlens/internal/estimate"
	"claimlens/internal/intent"
)

const replyTestBill = `City Care Hospital
Patient Name: Anita Desai
Room Rent 2 days	8000
Surgery Charges	35000
Gloves	2000
Total	50000`

func replyTestRule() *domain.PolicyRule {
	return &domain.PolicyRule{
		Insurer:              "Acme Health",
		Plan:                 "Gold",
		CoveragePercent:      0.8,
		Deductible:           1000,
		AnnualLimit:          500000,
		CoPayPercent:         0.1,
		NonPayableKeywords:   []string{"gloves"},
		ProcessingDescriptor: "within 24 hours",
	}
}

// assertSingleSentence checks the hard formatting contract for short intents.
func assertSingleSentence(t *testing.T, reply string) {
	t.Helper()
	assert.NotContains(t, reply, "\n")
	assert.True(t, strings.HasSuffix(reply, "."), "reply %q must end with a period", reply)
	assert.Equal(t, 1, strings.Count(reply, "."), "reply %q must be one sentence", reply)
}

func TestBuildReply_TotalAmount(t *testing.T) {
	rule := replyTestRule()
	est := estimate.Estimate(replyTestBill, rule, intent.IntentTotalAmount)

	reply := BuildReply(intent.IntentTotalAmount, est, rule, replyTestBill)
	assert.Contains(t, reply, "₹50,000")
	assert.NotContains(t, reply, "\n")
}

func TestBuildReply_Coverage(t *testing.T) {
	rule := replyTestRule()
	est := estimate.Estimate(replyTestBill, rule, intent.IntentCoverage)

	reply := BuildReply(intent.IntentCoverage, est, rule, replyTestBill)
	assert.Contains(t, reply, "₹33,840")
	assert.NotContains(t, reply, "\n")
}

func TestBuildReply_CoverageRange(t *testing.T) {
	rule := replyTestRule()
	limit := 2000.0
	rule.RoomRentLimit = &limit
	est := estimate.Estimate(replyTestBill, rule, intent.IntentCoverage)

	reply := BuildReply(intent.IntentCoverage, est, rule, replyTestBill)
	assert.Contains(t, reply, "between")
	assert.NotContains(t, reply, "\n")
}

func TestBuildReply_Timeline(t *testing.T) {
	rule := replyTestRule()
	est := estimate.Estimate(replyTestBill, rule, intent.IntentTimeline)

	reply := BuildReply(intent.IntentTimeline, est, rule, replyTestBill)
	assertSingleSentence(t, reply)
	assert.Contains(t, reply, "24 to 48 hours")
}

func TestBuildReply_RoomAnalysis(t *testing.T) {
	rule := replyTestRule()
	limit := 2000.0
	rule.RoomRentLimit = &limit
	est := estimate.Estimate(replyTestBill, rule, intent.IntentRoom)

	reply := BuildReply(intent.IntentRoom, est, rule, replyTestBill)
	assert.Contains(t, reply, "₹4,000.00/day")
	assert.Contains(t, reply, "exceeds")

	rule.RoomRentLimit = nil
	reply = BuildReply(intent.IntentRoom, est, rule, replyTestBill)
	assert.Contains(t, reply, "no room rent limit")
}

func TestBuildReply_Breakdown(t *testing.T) {
	rule := replyTestRule()
	est := estimate.Estimate(replyTestBill, rule, intent.IntentBreakdown)

	reply := BuildReply(intent.IntentBreakdown, est, rule, replyTestBill)
	assert.Contains(t, reply, "Coverage Breakdown")
	assert.Contains(t, reply, "Total bill: ₹50,000.00")
	assert.Contains(t, reply, "Non-payable items excluded: ₹2,000.00")
	assert.Contains(t, reply, "Policy deductible: ₹1,000.00")
	assert.Contains(t, reply, "Estimated insurer payment: ₹33,840.00")
	assert.Contains(t, reply, "Final approval depends on your insurer")
}

func TestBuildReply_NoTotal(t *testing.T) {
	rule := replyTestRule()
	bill := "illegible scan"
	est := estimate.Estimate(bill, rule, intent.IntentCoverage)

	reply := BuildReply(intent.IntentCoverage, est, rule, bill)
	assert.Contains(t, reply, "cannot be estimated")

	reply = BuildReply(intent.IntentTotalAmount, est, rule, bill)
	assert.Contains(t, reply, "not available")
}

func TestIsGreeting(t *testing.T) {
	for _, s := range []string{"hi", "Hi!", "hello", "Hey,", "thanks", "Thank you", "good morning"} {
		assert.True(t, isGreeting(s), "expected %q to be a greeting", s)
	}
	for _, s := range []string{"hello what is my total", "hii can you help", "greetings"} {
		assert.False(t, isGreeting(s), "expected %q not to be a greeting", s)
	}
}

func TestGreetingReply_UsesPatientName(t *testing.T) {
	assert.Equal(t,
		"Hi Anita Desai, how can I help you with your hospital bill or insurance claim today?",
		greetingReply(replyTestBill))

	assert.Equal(t,
		"Hi, how can I help you with your hospital bill or insurance claim today?",
		greetingReply("no names in this bill"))
}
