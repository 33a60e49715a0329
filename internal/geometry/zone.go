package geometry

import "github.com/BurntSushi/xgbutil/xcursor"

// Zone identifies the part of a frame a pointer is over.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneTitleBar
	ZoneNorth
	ZoneNorthEast
	ZoneEast
	ZoneSouthEast
	ZoneSouth
	ZoneSouthWest
	ZoneWest
	ZoneNorthWest
)

var zoneNames = [...]string{
	ZoneNone:      "none",
	ZoneTitleBar:  "title-bar",
	ZoneNorth:     "north",
	ZoneNorthEast: "north-east",
	ZoneEast:      "east",
	ZoneSouthEast: "south-east",
	ZoneSouth:     "south",
	ZoneSouthWest: "south-west",
	ZoneWest:      "west",
	ZoneNorthWest: "north-west",
}

func (z Zone) String() string {
	if z < 0 || int(z) >= len(zoneNames) {
		return "unknown"
	}
	return zoneNames[z]
}

// Resizes reports whether grasping the zone changes the frame size.
func (z Zone) Resizes() bool {
	return z >= ZoneNorth && z <= ZoneNorthWest
}

// Cursor returns the cursor-font glyph shown while hovering the zone.
func (z Zone) Cursor() uint16 {
	switch z {
	case ZoneNorth:
		return xcursor.TopSide
	case ZoneNorthEast:
		return xcursor.TopRightCorner
	case ZoneEast:
		return xcursor.RightSide
	case ZoneSouthEast:
		return xcursor.BottomRightCorner
	case ZoneSouth:
		return xcursor.BottomSide
	case ZoneSouthWest:
		return xcursor.BottomLeftCorner
	case ZoneWest:
		return xcursor.LeftSide
	case ZoneNorthWest:
		return xcursor.TopLeftCorner
	default:
		return xcursor.TopLeftArrow
	}
}

func inRange(begin, size, n int) bool {
	return begin <= n && n < begin+size
}

func inRegion(x, y, width, height, px, py int) bool {
	return inRange(x, width, px) && inRange(y, height, py)
}

// ClassifyZone maps a frame-local point to a zone. Corners are L-shaped:
// each one spans cornerSize along the edge it sits on and continues for
// cornerSize-frameSize along the perpendicular edge. Corners are checked
// before edges, and a point inside the frame that is on no border is the
// title bar.
func ClassifyZone(width, height, frameSize, cornerSize, x, y int) Zone {
	virt := cornerSize - frameSize
	middleWidth := width - 2*cornerSize
	middleHeight := height - 2*cornerSize
	eastCornerX := width - cornerSize
	eastX := width - frameSize
	southCornerY := height - cornerSize
	southY := height - frameSize

	switch {
	case inRegion(0, frameSize, frameSize, virt, x, y),
		inRegion(0, 0, cornerSize, frameSize, x, y):
		return ZoneNorthWest
	case inRegion(cornerSize, 0, middleWidth, frameSize, x, y):
		return ZoneNorth
	case inRegion(eastCornerX, 0, cornerSize, frameSize, x, y),
		inRegion(eastX, frameSize, frameSize, virt, x, y):
		return ZoneNorthEast
	case inRegion(eastX, cornerSize, frameSize, middleHeight, x, y):
		return ZoneEast
	case inRegion(eastX, southCornerY, frameSize, virt, x, y),
		inRegion(eastCornerX, southY, cornerSize, frameSize, x, y):
		return ZoneSouthEast
	case inRegion(cornerSize, southY, middleWidth, frameSize, x, y):
		return ZoneSouth
	case inRegion(0, southY, cornerSize, frameSize, x, y),
		inRegion(0, southCornerY, frameSize, virt, x, y):
		return ZoneSouthWest
	case inRegion(0, cornerSize, frameSize, middleHeight, x, y):
		return ZoneWest
	case inRegion(0, 0, width, height, x, y):
		return ZoneTitleBar
	}
	return ZoneNone
}
