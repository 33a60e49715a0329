package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrorInfo is the decoded content of an X protocol error.
type ErrorInfo struct {
	Name        string
	Sequence    uint16
	BadValue    uint32
	MajorOpcode byte
	MinorOpcode uint16
}

// Request returns the core request name for the major opcode.
func (e ErrorInfo) Request() string {
	if name, ok := requestNames[e.MajorOpcode]; ok {
		return name
	}
	return fmt.Sprintf("opcode %d", e.MajorOpcode)
}

func fromValue(v xproto.ValueError) ErrorInfo {
	return ErrorInfo{v.NiceName, v.Sequence, v.BadValue, v.MajorOpcode, v.MinorOpcode}
}

func fromRequest(r xproto.RequestError) ErrorInfo {
	return ErrorInfo{r.NiceName, r.Sequence, r.BadValue, r.MajorOpcode, r.MinorOpcode}
}

// DescribeError decodes err. Unknown error types keep the fields xgb.Error
// exposes.
func DescribeError(err xgb.Error) ErrorInfo {
	switch e := err.(type) {
	case xproto.RequestError:
		return fromRequest(e)
	case xproto.ValueError:
		return fromValue(e)
	case xproto.WindowError:
		return fromValue(xproto.ValueError(e))
	case xproto.PixmapError:
		return fromValue(xproto.ValueError(e))
	case xproto.AtomError:
		return fromValue(xproto.ValueError(e))
	case xproto.CursorError:
		return fromValue(xproto.ValueError(e))
	case xproto.FontError:
		return fromValue(xproto.ValueError(e))
	case xproto.DrawableError:
		return fromValue(xproto.ValueError(e))
	case xproto.ColormapError:
		return fromValue(xproto.ValueError(e))
	case xproto.GContextError:
		return fromValue(xproto.ValueError(e))
	case xproto.IDChoiceError:
		return fromValue(xproto.ValueError(e))
	case xproto.MatchError:
		return fromRequest(xproto.RequestError(e))
	case xproto.AccessError:
		return fromRequest(xproto.RequestError(e))
	case xproto.AllocError:
		return fromRequest(xproto.RequestError(e))
	case xproto.NameError:
		return fromRequest(xproto.RequestError(e))
	case xproto.LengthError:
		return fromRequest(xproto.RequestError(e))
	case xproto.ImplementationError:
		return fromRequest(xproto.RequestError(e))
	}
	return ErrorInfo{
		Name:     err.Error(),
		Sequence: err.SequenceId(),
		BadValue: err.BadId(),
	}
}

var requestNames = map[byte]string{
	1:   "CreateWindow",
	2:   "ChangeWindowAttributes",
	3:   "GetWindowAttributes",
	4:   "DestroyWindow",
	6:   "ChangeSaveSet",
	7:   "ReparentWindow",
	8:   "MapWindow",
	10:  "UnmapWindow",
	12:  "ConfigureWindow",
	14:  "GetGeometry",
	15:  "QueryTree",
	16:  "InternAtom",
	18:  "ChangeProperty",
	20:  "GetProperty",
	25:  "SendEvent",
	28:  "GrabButton",
	35:  "AllowEvents",
	42:  "SetInputFocus",
	45:  "OpenFont",
	47:  "QueryFont",
	48:  "QueryTextExtents",
	55:  "CreateGC",
	56:  "ChangeGC",
	60:  "FreeGC",
	61:  "ClearArea",
	66:  "PolySegment",
	67:  "PolyRectangle",
	70:  "PolyFillRectangle",
	76:  "ImageText8",
	85:  "AllocNamedColor",
	94:  "CreateGlyphCursor",
	113: "KillClient",
}
