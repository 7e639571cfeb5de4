package estimate

import (
	"regexp"
	"strings"

	"claimlens/internal/domain"
)

// categoryKeywords maps bucket keywords checked in order after the policy's
// non-payable keywords. First match wins.
var categoryKeywords = []struct {
	category domain.LineItemCategory
	words    []string
}{
	{domain.CategoryRoom, []string{"room rent", "room charge", "room", "ward", "bed charge", "icu"}},
	{domain.CategoryPharmacy, []string{"pharmacy", "medicine", "medicines", "drug", "tablet", "injection"}},
	{domain.CategoryProcedure, []string{
		"surgery", "procedure", "operation", "ot charge", "anesthesia", "anaesthesia",
		"consultation", "investigation", "lab", "x-ray", "scan", "nursing",
	}},
}

// lineAmountRe captures the trailing currency-like token of a charge line.
var lineAmountRe = regexp.MustCompile(`(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*$`)

var daysRe = regexp.MustCompile(`(?i)(?:x\s*)?(\d+)\s*days?\b`)

// ParseLineItems extracts charge lines from bill text, categorizing each
// against the policy's non-payable keywords and the built-in category table.
// Best-effort: an empty result is a valid state.
func ParseLineItems(text string, nonPayableKeywords []string) []domain.BillLineItem {
	var items []domain.BillLineItem
	for _, ln := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			continue
		}
		// Aggregate lines are not line items.
		if isTotalLine(trimmed) {
			continue
		}
		m := lineAmountRe.FindStringSubmatch(strings.ToLower(trimmed))
		if m == nil {
			continue
		}
		amount, err := parseAmount(m[1])
		if err != nil || amount <= 0 {
			continue
		}
		desc := strings.TrimSpace(trimmed[:len(trimmed)-len(m[0])])
		desc = strings.TrimRight(desc, ":-| \t")
		if desc == "" {
			continue
		}
		items = append(items, domain.BillLineItem{
			Description: desc,
			Amount:      amount,
			Category:    categorize(desc, nonPayableKeywords),
		})
	}
	return items
}

func isTotalLine(line string) bool {
	for _, p := range totalPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func categorize(desc string, nonPayableKeywords []string) domain.LineItemCategory {
	d := strings.ToLower(desc)
	for _, kw := range nonPayableKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(d, kw) {
			return domain.CategoryNonPayable
		}
	}
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(d, w) {
				return ck.category
			}
		}
	}
	return domain.CategoryOther
}

// roomDailyRate derives a per-day rate for a room line item. A "N days"
// mention in the description splits the amount; otherwise the line amount is
// treated as the daily rate.
func roomDailyRate(item domain.BillLineItem) (rate float64, days int) {
	days = 1
	if m := daysRe.FindStringSubmatch(item.Description); m != nil {
		if n, err := parseAmount(m[1]); err == nil && n >= 1 {
			days = int(n)
		}
	}
	return item.Amount / float64(days), days
}
