package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"claimlens/internal/domain"
)

// BuildSystemPrompt assembles the grounding prompt for free-form turns. The
// model only ever sees the uploaded bill and the matched policy rule, and is
// instructed to refuse anything outside that context.
func BuildSystemPrompt(rule *domain.PolicyRule, billText string) string {
	policyJSON, err := json.MarshalIndent(policyPromptView(rule), "", "  ")
	if err != nil {
		policyJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are a hospital bill and insurance claim assistant for Indian health insurance.\n\n")
	b.WriteString("POLICY RULES (JSON):\n")
	b.Write(policyJSON)
	b.WriteString("\n\nUPLOADED BILL TEXT:\n")
	b.WriteString(billText)
	b.WriteString("\n\nSTRICT RULES:\n")
	b.WriteString("1. Answer ONLY using the bill text and policy rules above. If the answer is not in them, say you do not have that information and suggest contacting the insurer.\n")
	b.WriteString("2. Never invent amounts, dates, or policy terms.\n")
	b.WriteString("3. Format all money in Indian rupees with Indian digit grouping, e.g. ₹1,23,456.78.\n")
	b.WriteString("4. When asked for the bill total, coverage amount, or claim timeline, reply in exactly one short sentence.\n")
	b.WriteString("5. Politely decline questions unrelated to this bill or insurance claim.\n")
	b.WriteString("6. Remind the user that final approval depends on the insurer when giving coverage figures.\n")
	return b.String()
}

func policyPromptView(rule *domain.PolicyRule) map[string]any {
	v := map[string]any{
		"insurer":              rule.Insurer,
		"plan":                 rule.Plan,
		"coverage_percent":     rule.CoveragePercent,
		"deductible":           rule.Deductible,
		"annual_limit":         rule.AnnualLimit,
		"co_pay_percent":       rule.CoPayPercent,
		"non_payable_keywords": rule.NonPayableKeywords,
		"processing":           rule.ProcessingDescriptor,
	}
	if rule.RoomRentLimit == nil {
		v["room_rent_limit"] = "unlimited"
	} else {
		v["room_rent_limit"] = fmt.Sprintf("%.2f per day", *rule.RoomRentLimit)
	}
	return v
}
