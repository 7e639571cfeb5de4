package estimate

import "strings"

// RoomType is the normalized class of a billed room, ordered cheapest first.
type RoomType int

const (
	RoomTypeUnknown RoomType = iota
	RoomTypeShared
	RoomTypeSinglePrivate
	RoomTypeAnyRoom
)

func (rt RoomType) String() string {
	switch rt {
	case RoomTypeShared:
		return "shared"
	case RoomTypeSinglePrivate:
		return "single private"
	case RoomTypeAnyRoom:
		return "premium"
	}
	return "unknown"
}

// roomTypeKeywords order matters: "semi private" must be checked before
// "private", and "deluxe single" normalizes to the premium class.
var roomTypeKeywords = []struct {
	roomType RoomType
	words    []string
}{
	{RoomTypeAnyRoom, []string{"suite", "deluxe", "any room"}},
	{RoomTypeShared, []string{"shared", "sharing", "twin", "semi private", "semi-private", "general ward"}},
	{RoomTypeSinglePrivate, []string{"single", "private"}},
}

// DetectRoomType normalizes a room charge description to its room class.
func DetectRoomType(description string) RoomType {
	d := strings.ToLower(description)
	for _, rk := range roomTypeKeywords {
		for _, w := range rk.words {
			if strings.Contains(d, w) {
				return rk.roomType
			}
		}
	}
	return RoomTypeUnknown
}
