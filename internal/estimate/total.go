package estimate

import (
	"regexp"
	"strconv"
	"strings"
)

// totalPatterns are tried in priority order against the bill text, each
// scanning lines bottom-up: the aggregate usually appears near the end.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)net\s*payable`),
	regexp.MustCompile(`(?i)amount\s*payable`),
	regexp.MustCompile(`(?i)grand\s*total`),
	regexp.MustCompile(`(?i)\btotal\b`),
}

var amountRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]{1,2})?`)

// ParseTotalAmount locates the aggregate bill total in raw text. It returns
// the last currency-like token on the first line (scanning bottom-up) that
// matches a total keyword, and false when no total is locatable.
func ParseTotalAmount(text string) (float64, bool) {
	lines := strings.Split(text, "\n")
	for _, p := range totalPatterns {
		for i := len(lines) - 1; i >= 0; i-- {
			if !p.MatchString(lines[i]) {
				continue
			}
			vals := amountRe.FindAllString(lines[i], -1)
			if len(vals) == 0 {
				continue
			}
			if v, err := parseAmount(vals[len(vals)-1]); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// NonPayableHit records one keyword-matched non-payable line.
type NonPayableHit struct {
	Keyword string  `json:"keyword"`
	Amount  float64 `json:"amount"`
}

// SumNonPayables scans bill text for lines matching the policy's non-payable
// keywords and sums the last currency-like token of each matching line.
func SumNonPayables(text string, keywords []string) (float64, []NonPayableHit) {
	var hits []NonPayableHit
	lines := strings.Split(text, "\n")
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			continue
		}
		for _, ln := range lines {
			if !re.MatchString(ln) {
				continue
			}
			vals := amountRe.FindAllString(ln, -1)
			if len(vals) == 0 {
				continue
			}
			if v, perr := parseAmount(vals[len(vals)-1]); perr == nil {
				hits = append(hits, NonPayableHit{Keyword: kw, Amount: v})
			}
		}
	}
	var total float64
	for _, h := range hits {
		total += h.Amount
	}
	return total, hits
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
