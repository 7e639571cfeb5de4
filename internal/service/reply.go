package service

import (
	"fmt"
	"regexp"
	"strings"

	"claimlens/internal/domain"
	"claimlens/internal/estimate"
	"claimlens/internal/intent"
)

// BuildReply renders the deterministic reply for an estimate-bearing intent.
// The formatting contract is hard: total_amount, coverage_estimate, and
// timeline replies are exactly one short sentence; only breakdown_request may
// be multi-part.
func BuildReply(in intent.Intent, est *domain.CoverageEstimate, rule *domain.PolicyRule, billText string) string {
	switch in {
	case intent.IntentTotalAmount:
		total, ok := estimate.ParseTotalAmount(billText)
		if !ok {
			return "Your total bill amount is not available in the uploaded bill."
		}
		return fmt.Sprintf("Your total bill amount is %s.", estimate.FormatRupees(total))

	case intent.IntentCoverage:
		if est.Status == domain.EstimateNoTotal {
			return "Your coverage cannot be estimated because no bill total could be located; please contact your insurer."
		}
		if est.Conservative == est.Optimistic {
			return fmt.Sprintf("Your insurer is estimated to pay %s of this bill.", estimate.FormatRupees(est.Optimistic))
		}
		return fmt.Sprintf("Your insurer is estimated to pay between %s and %s of this bill.",
			estimate.FormatRupees(est.Conservative), estimate.FormatRupees(est.Optimistic))

	case intent.IntentTimeline:
		switch est.TimelineBucket {
		case domain.TimelineInstant:
			return "Your claim is expected to be processed instantly."
		case domain.Timeline24To48h:
			return "Your claim is expected to be processed within 24 to 48 hours."
		case domain.TimelineBizDays:
			return "Your claim is expected to be processed within 3 to 5 business days."
		}
		return "Your claim processing timeline is not available; please contact your insurer."

	case intent.IntentRoom:
		return roomReply(rule, billText)

	case intent.IntentBreakdown:
		return BuildBreakdown(est, rule, billText)
	}
	return ""
}

func roomReply(rule *domain.PolicyRule, billText string) string {
	a := estimate.AnalyzeRoom(billText, rule)
	if !a.Found {
		return "No room charges could be identified in the uploaded bill."
	}
	room := "room"
	if a.RoomType != estimate.RoomTypeUnknown {
		room = a.RoomType.String() + " room"
	}
	if a.Limit == nil {
		return fmt.Sprintf("Your %s charges of %s/day are fully considered because your policy has no room rent limit.",
			room, estimate.FormatRupees(a.DailyRate))
	}
	if a.OverLimit {
		return fmt.Sprintf("Your %s rate of %s/day exceeds your policy's %s/day limit, so a proportionate deduction applies.",
			room, estimate.FormatRupees(a.DailyRate), estimate.FormatRupees(*a.Limit))
	}
	return fmt.Sprintf("Your %s charges of %s/day are within your policy's %s/day limit.",
		room, estimate.FormatRupees(a.DailyRate), estimate.FormatRupees(*a.Limit))
}

// BuildBreakdown renders the multi-part itemized reply enumerating the
// estimate's ordered deduction trace. The share-by-email summary reuses it.
func BuildBreakdown(est *domain.CoverageEstimate, rule *domain.PolicyRule, billText string) string {
	var b strings.Builder
	b.WriteString("Coverage Breakdown\n")

	if total, ok := estimate.ParseTotalAmount(billText); ok {
		fmt.Fprintf(&b, "- Total bill: %s\n", estimate.FormatRupees(total))
	} else {
		b.WriteString("- Total bill: Not available\n")
	}

	for _, d := range est.Deductions {
		fmt.Fprintf(&b, "- %s: %s\n", capitalize(d.Reason), estimate.FormatRupees(d.Amount))
	}

	switch est.Status {
	case domain.EstimateNoTotal:
		b.WriteString("- Estimated insurer payment: Not available\n")
	default:
		if est.Conservative == est.Optimistic {
			fmt.Fprintf(&b, "- Estimated insurer payment: %s\n", estimate.FormatRupees(est.Optimistic))
		} else {
			fmt.Fprintf(&b, "- Estimated insurer payment: %s to %s\n",
				estimate.FormatRupees(est.Conservative), estimate.FormatRupees(est.Optimistic))
		}
	}
	if est.Status == domain.EstimateTotalOnly {
		b.WriteString("- Note: individual line items could not be read, so this estimate uses the bill total only\n")
	}
	b.WriteString("Final approval depends on your insurer's assessment; this is an estimate based on policy rules.")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var greetingRe = regexp.MustCompile(`(?i)^\s*(hi|hii+|hello|hey|thanks|thank you|good (morning|afternoon|evening))[\s!,.]*$`)

// isGreeting reports whether the turn is a bare greeting that deserves a
// friendly reply instead of analysis.
func isGreeting(text string) bool {
	return greetingRe.MatchString(text)
}

var patientNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)patient\s*name\s*[:\-]?\s*([A-Za-z][A-Za-z .]{1,40})`),
	regexp.MustCompile(`(?i)\b(?:mr|ms|mrs)\.?\s+([A-Za-z][A-Za-z .]{1,40})`),
	regexp.MustCompile(`(?i)\bname\s*[:\-]\s*([A-Za-z][A-Za-z .]{1,40})`),
}

// patientName pulls the patient name out of bill text, best effort.
func patientName(billText string) string {
	for _, p := range patientNamePatterns {
		if m := p.FindStringSubmatch(billText); m != nil {
			name := strings.TrimSpace(m[1])
			// Drop anything after a second wordish boundary like "Age" labels.
			if idx := strings.IndexAny(name, "\n\r"); idx >= 0 {
				name = strings.TrimSpace(name[:idx])
			}
			if name != "" {
				return name
			}
		}
	}
	return ""
}

func greetingReply(billText string) string {
	if name := patientName(billText); name != "" {
		return fmt.Sprintf("Hi %s, how can I help you with your hospital bill or insurance claim today?", name)
	}
	return "Hi, how can I help you with your hospital bill or insurance claim today?"
}
