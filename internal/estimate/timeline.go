package estimate

import (
	"regexp"
	"strconv"
	"strings"

	"claimlens/internal/domain"
)

// timelineRule pairs a predicate with a bucket. Rules are evaluated top-down;
// first match wins.
type timelineRule struct {
	match  func(descriptor string) (domain.TimelineBucket, bool)
	reason string
}

var hoursRe = regexp.MustCompile(`(\d+)\s*hour`)

var timelineRules = []timelineRule{
	{
		reason: "instant keyword",
		match: func(d string) (domain.TimelineBucket, bool) {
			if strings.Contains(d, "instant") || strings.Contains(d, "immediate") {
				return domain.TimelineInstant, true
			}
			return "", false
		},
	},
	{
		reason: "hour count",
		match: func(d string) (domain.TimelineBucket, bool) {
			m := hoursRe.FindStringSubmatch(d)
			if m == nil {
				return "", false
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return "", false
			}
			if n <= 48 {
				return domain.Timeline24To48h, true
			}
			return domain.TimelineBizDays, true
		},
	},
	{
		reason: "day keyword",
		match: func(d string) (domain.TimelineBucket, bool) {
			if strings.Contains(d, "day") {
				return domain.TimelineBizDays, true
			}
			return "", false
		},
	},
}

// BucketTimeline maps a plan's free-text processing descriptor to a coarse
// timeline bucket. No match yields TimelineUnknown.
func BucketTimeline(descriptor string) domain.TimelineBucket {
	d := strings.ToLower(descriptor)
	for _, r := range timelineRules {
		if bucket, ok := r.match(d); ok {
			return bucket
		}
	}
	return domain.TimelineUnknown
}
