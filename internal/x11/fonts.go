package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Font is an opened core X font with the metrics decorations need.
type Font struct {
	ID      xproto.Font
	Name    string
	Ascent  int
	Descent int
}

// Height is the line height of the font.
func (f Font) Height() int {
	return f.Ascent + f.Descent
}

// ErrNoFont is returned when none of the candidate fonts can be opened.
var ErrNoFont = errors.New("no usable font")

// OpenFont opens the first font in names that the server knows.
func (c *Connection) OpenFont(names []string) (Font, error) {
	conn := c.Conn()
	fid, err := xproto.NewFontId(conn)
	if err != nil {
		return Font{}, err
	}

	for _, name := range names {
		if err := xproto.OpenFontChecked(conn, fid, uint16(len(name)), name).Check(); err != nil {
			continue
		}
		reply, err := xproto.QueryFont(conn, xproto.Fontable(fid)).Reply()
		if err != nil {
			xproto.CloseFont(conn, fid)
			return Font{}, fmt.Errorf("query font %q: %w", name, err)
		}
		return Font{
			ID:      fid,
			Name:    name,
			Ascent:  int(reply.FontAscent),
			Descent: int(reply.FontDescent),
		}, nil
	}
	return Font{}, fmt.Errorf("%w: tried %v", ErrNoFont, names)
}

// TextWidth returns the width of text drawn in f. Only the first 255 bytes
// count since that is all ImageText8 draws.
func (c *Connection) TextWidth(f Font, text string) int {
	text = ClipText(text)
	if text == "" {
		return 0
	}
	chars := make([]xproto.Char2b, len(text))
	for i := 0; i < len(text); i++ {
		chars[i] = xproto.Char2b{Byte1: 0, Byte2: text[i]}
	}
	reply, err := xproto.QueryTextExtents(c.Conn(), xproto.Fontable(f.ID), chars, uint16(len(chars))).Reply()
	if err != nil {
		return 0
	}
	return int(reply.OverallWidth)
}

// ClipText cuts text to the 255 bytes a single ImageText8 request carries.
func ClipText(text string) string {
	if len(text) > 255 {
		return text[:255]
	}
	return text
}

// AllocColor resolves a color name such as "light pink" in the default
// colormap.
func (c *Connection) AllocColor(name string) (uint32, error) {
	cmap := c.XUtil.Screen().DefaultColormap
	reply, err := xproto.AllocNamedColor(c.Conn(), cmap, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("alloc color %q: %w", name, err)
	}
	return reply.Pixel, nil
}
