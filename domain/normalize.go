package domain

import "strings"

// Room is a canonical room category. The curated image catalog and the
// result summaries are keyed by these values, never by raw UI labels.
type Room string

const (
	RoomLiving   Room = "living"
	RoomBedroom  Room = "bedroom"
	RoomKitchen  Room = "kitchen"
	RoomBathroom Room = "bathroom"
	RoomOffice   Room = "office"
	RoomDining   Room = "dining"
)

// Style is a canonical design style category.
type Style string

const (
	StyleModern       Style = "modern"
	StyleTraditional  Style = "traditional"
	StyleScandinavian Style = "scandinavian"
	StyleIndustrial   Style = "industrial"
	StyleBohemian     Style = "bohemian"
)

// Rooms lists every canonical room in a fixed order.
var Rooms = []Room{RoomLiving, RoomBedroom, RoomKitchen, RoomBathroom, RoomOffice, RoomDining}

// Styles lists every canonical style in a fixed order.
var Styles = []Style{StyleModern, StyleTraditional, StyleScandinavian, StyleIndustrial, StyleBohemian}

var roomLookup = map[string]Room{
	"living room":     RoomLiving,
	"bedroom":         RoomBedroom,
	"master bedroom":  RoomBedroom,
	"children's room": RoomBedroom,
	"kitchen":         RoomKitchen,
	"bathroom":        RoomBathroom,
	"home office":     RoomOffice,
	"study room":      RoomOffice,
	"dining room":     RoomDining,

	// Canonical names map to themselves so normalized values stay stable.
	"living": RoomLiving,
	"office": RoomOffice,
	"dining": RoomDining,
}

var styleLookup = map[string]Style{
	"modern":             StyleModern,
	"contemporary":       StyleModern,
	"mid-century modern": StyleModern,
	"art deco":           StyleModern,
	"traditional":        StyleTraditional,
	"rustic":             StyleTraditional,
	"mediterranean":      StyleTraditional,
	"farmhouse":          StyleTraditional,
	"minimalist":         StyleScandinavian,
	"scandinavian":       StyleScandinavian,
	"industrial":         StyleIndustrial,
	"bohemian":           StyleBohemian,
}

// NormalizeRoom maps a UI room label onto its canonical category. The lookup
// is case-insensitive on the trimmed label; anything unmapped becomes
// RoomLiving. It never fails.
func NormalizeRoom(label string) Room {
	if room, ok := roomLookup[strings.ToLower(strings.TrimSpace(label))]; ok {
		return room
	}
	return RoomLiving
}

// NormalizeStyle maps a UI style label onto its canonical category.
// Unmapped labels become StyleModern. It never fails.
func NormalizeStyle(label string) Style {
	if style, ok := styleLookup[strings.ToLower(strings.TrimSpace(label))]; ok {
		return style
	}
	return StyleModern
}
