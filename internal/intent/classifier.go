// Package intent classifies user questions into response modes using an
// ordered keyword-rule table. Classification is deterministic; unmatched
// text falls through to IntentGeneral.
package intent

import "strings"

// Intent is the classified purpose of a user's question. It determines the
// shape of the reply: single-sentence intents must produce exactly one short
// sentence, and only IntentBreakdown may produce a multi-part itemized reply.
type Intent string

const (
	IntentTotalAmount Intent = "total_amount"
	IntentCoverage    Intent = "coverage_estimate"
	IntentTimeline    Intent = "timeline"
	IntentRoom        Intent = "room_analysis"
	IntentBreakdown   Intent = "breakdown_request"
	IntentGeneral     Intent = "general"
)

// rule pairs an intent with the phrases that trigger it. Rules are evaluated
// top-down; the first rule with a matching phrase wins.
type rule struct {
	intent  Intent
	phrases []string
}

// breakdownPhrases force IntentBreakdown regardless of other matches: an
// explicit detail request always wins.
var breakdownPhrases = []string{
	"breakdown", "break down", "break up", "split up", "itemize", "itemise", "full analysis",
}

// rules lists the remaining intents in fixed priority order:
// coverage > timeline > room > total.
var rules = []rule{
	{
		intent: IntentCoverage,
		phrases: []string{
			"cover", "coverage", "insurance pay", "insurer pay", "will insurance",
			"payable", "approval amount", "estimate", "how much will i pay",
			"how much do i pay", "you pay", "out of pocket", "claim amount",
		},
	},
	{
		intent: IntentTimeline,
		phrases: []string{
			"when will", "how long", "timeline", "processing time", "turnaround",
			"tat", "claim status", "approved by", "decision",
		},
	},
	{
		intent: IntentRoom,
		phrases: []string{
			"room", "room rent", "ward", "bed charge", "sharing", "single room",
			"private room", "room cap",
		},
	},
	{
		intent: IntentTotalAmount,
		phrases: []string{
			"total bill", "bill amount", "total amount", "grand total",
			"net payable", "total",
		},
	},
}

// Classify maps user text to an Intent. It never fails.
func Classify(text string) Intent {
	t := strings.ToLower(text)

	for _, p := range breakdownPhrases {
		if strings.Contains(t, p) {
			return IntentBreakdown
		}
	}

	// "details" alone is ambiguous ("payment details") but the original
	// behavior treats any explicit detail request as a breakdown request.
	if strings.Contains(t, "detail") {
		return IntentBreakdown
	}

	for _, r := range rules {
		for _, p := range r.phrases {
			if strings.Contains(t, p) {
				return r.intent
			}
		}
	}
	return IntentGeneral
}

// SingleSentence reports whether the reply for this intent must be exactly
// one short sentence.
func SingleSentence(i Intent) bool {
	switch i {
	case IntentTotalAmount, IntentCoverage, IntentTimeline:
		return true
	}
	return false
}

// NeedsEstimate reports whether answering this intent requires running the
// coverage estimation engine.
func NeedsEstimate(i Intent) bool {
	switch i {
	case IntentTotalAmount, IntentCoverage, IntentTimeline, IntentRoom, IntentBreakdown:
		return true
	}
	return false
}
