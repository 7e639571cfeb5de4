package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/domain"
)

func TestBucketTimeline(t *testing.T) {
	cases := []struct {
		descriptor string
		want       domain.TimelineBucket
	}{
		{"instant cashless approval", domain.TimelineInstant},
		{"Immediate settlement at discharge", domain.TimelineInstant},
		{"processed within 24 hours", domain.Timeline24To48h},
		{"48 hour turnaround", domain.Timeline24To48h},
		{"72 hours for reimbursement", domain.TimelineBizDays},
		{"3-5 business days", domain.TimelineBizDays},
		{"settled in 7 days", domain.TimelineBizDays},
		{"", domain.TimelineUnknown},
		{"varies by claim", domain.TimelineUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BucketTimeline(tc.descriptor), "descriptor %q", tc.descriptor)
	}
}
