package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRoomType(t *testing.T) {
	cases := []struct {
		desc string
		want RoomType
	}{
		{"Single Private Room Rent", RoomTypeSinglePrivate},
		{"Private room 2 days", RoomTypeSinglePrivate},
		{"Semi Private Ward", RoomTypeShared},
		{"Twin sharing room", RoomTypeShared},
		{"General Ward bed charge", RoomTypeShared},
		{"Deluxe Suite", RoomTypeAnyRoom},
		{"Room Rent", RoomTypeUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectRoomType(tc.desc), "description %q", tc.desc)
	}
}

func TestRoomTypeOrdering(t *testing.T) {
	assert.Less(t, int(RoomTypeShared), int(RoomTypeSinglePrivate))
	assert.Less(t, int(RoomTypeSinglePrivate), int(RoomTypeAnyRoom))
}
