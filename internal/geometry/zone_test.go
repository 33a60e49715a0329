package geometry

import (
	"testing"

	"github.com/BurntSushi/xgbutil/xcursor"
)

const (
	testFrameSize  = 4
	testCornerSize = 32
)

func TestClassifyZone_Regions(t *testing.T) {
	const w, h = 200, 150
	cases := []struct {
		name string
		x, y int
		want Zone
	}{
		{"nw horizontal arm", 10, 0, ZoneNorthWest},
		{"nw vertical arm", 0, 10, ZoneNorthWest},
		{"nw arm end", 31, 3, ZoneNorthWest},
		{"north start", 32, 0, ZoneNorth},
		{"north middle", 100, 2, ZoneNorth},
		{"ne horizontal arm", w - 32, 0, ZoneNorthEast},
		{"ne vertical arm", w - 1, 20, ZoneNorthEast},
		{"east", w - 2, 75, ZoneEast},
		{"se vertical arm", w - 1, h - 20, ZoneSouthEast},
		{"se horizontal arm", w - 10, h - 1, ZoneSouthEast},
		{"south", 100, h - 1, ZoneSouth},
		{"sw horizontal arm", 5, h - 2, ZoneSouthWest},
		{"sw vertical arm", 1, h - 20, ZoneSouthWest},
		{"west", 0, 75, ZoneWest},
		{"inside", 100, 10, ZoneTitleBar},
		{"inside near corner", 5, 5, ZoneTitleBar},
		{"outside right", w, 10, ZoneNone},
		{"outside negative", -1, 10, ZoneNone},
		{"outside below", 10, h, ZoneNone},
	}
	for _, tc := range cases {
		got := ClassifyZone(w, h, testFrameSize, testCornerSize, tc.x, tc.y)
		if got != tc.want {
			t.Fatalf("%s: ClassifyZone(%d,%d) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestClassifyZone_BorderBandHasNoGaps(t *testing.T) {
	sizes := [][2]int{{64, 64}, {65, 100}, {300, 64}, {317, 229}}
	for _, s := range sizes {
		w, h := s[0], s[1]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				onBorder := x < testFrameSize || y < testFrameSize ||
					x >= w-testFrameSize || y >= h-testFrameSize
				z := ClassifyZone(w, h, testFrameSize, testCornerSize, x, y)
				if onBorder && !z.Resizes() {
					t.Fatalf("%dx%d: border point (%d,%d) classified %v", w, h, x, y, z)
				}
				if !onBorder && z != ZoneTitleBar {
					t.Fatalf("%dx%d: inner point (%d,%d) classified %v", w, h, x, y, z)
				}
			}
		}
	}
}

func TestClassifyZone_TotalOutsideFrame(t *testing.T) {
	for _, p := range [][2]int{{-100, -100}, {1000, 5}, {5, 1000}, {-1, -1}} {
		if got := ClassifyZone(100, 100, testFrameSize, testCornerSize, p[0], p[1]); got != ZoneNone {
			t.Fatalf("ClassifyZone(%v) = %v, want none", p, got)
		}
	}
}

func TestZoneCursor(t *testing.T) {
	if ZoneTitleBar.Cursor() != xcursor.TopLeftArrow || ZoneNone.Cursor() != xcursor.TopLeftArrow {
		t.Fatalf("title bar and none should share the generic cursor")
	}
	seen := map[uint16]Zone{}
	for z := ZoneNorth; z <= ZoneNorthWest; z++ {
		c := z.Cursor()
		if c == xcursor.TopLeftArrow {
			t.Fatalf("%v uses the generic cursor", z)
		}
		if prev, ok := seen[c]; ok {
			t.Fatalf("%v and %v share cursor %d", prev, z, c)
		}
		seen[c] = z
	}
}

func TestZoneString(t *testing.T) {
	if got := ZoneSouthWest.String(); got != "south-west" {
		t.Fatalf("String() = %q", got)
	}
	if got := Zone(42).String(); got != "unknown" {
		t.Fatalf("String() = %q, want unknown", got)
	}
}
