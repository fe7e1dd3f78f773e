package model

import "strings"

// Room is an exam venue identified as <BUILDING>-<suffix>.
type Room struct {
	ID string `csv:"room_id" json:"id"`
}

// Building returns the building prefix of the room.
func (r Room) Building() string {
	return BuildingPrefix(r.ID)
}

// BuildingPrefix returns the leading run of uppercase letters before the
// first '-' of a room identifier. Identifiers without a separator, or whose
// prefix contains anything but A-Z, have no building.
func BuildingPrefix(roomID string) string {
	prefix, _, found := strings.Cut(roomID, "-")
	if !found || prefix == "" {
		return ""
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return prefix
}

// RoomIDs flattens rooms into their identifiers, keeping order.
func RoomIDs(rooms []*Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}
