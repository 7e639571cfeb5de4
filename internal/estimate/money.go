package estimate

import (
	"fmt"
	"strings"
)

// FormatRupees renders an amount as ₹ with Indian digit grouping and two
// decimals, e.g. 1234567.89 → "₹12,34,567.89".
func FormatRupees(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	grouped := intPart
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		grouped = strings.Join(append(groups, tail), ",")
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "₹" + grouped + "." + fracPart
}
