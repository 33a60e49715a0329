package platform

import (
	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/logging"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"
)

// Trace returns a Display that logs every request made through it, with the
// caller's file and line, before forwarding it to d. When log does not have
// debug enabled d is returned unchanged.
func Trace(d Display, log *logrus.Logger) Display {
	if log == nil || !log.IsLevelEnabled(logrus.DebugLevel) {
		return d
	}
	return &traced{d: d, log: log}
}

type traced struct {
	d   Display
	log *logrus.Logger
}

// note logs op on behalf of the code that called the traced method.
func (t *traced) note(op string, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields[logging.CallerKey] = logging.Caller(2)
	t.log.WithFields(fields).Debug(op)
}

func (t *traced) fail(op string, err error) {
	if err != nil {
		t.log.WithError(err).Debug(op + " failed")
	}
}

func win(w Window) logrus.Fields {
	return logrus.Fields{"window": w}
}

func (t *traced) Root() Window                   { return t.d.Root() }
func (t *traced) ScreenSize() (int, int)         { return t.d.ScreenSize() }
func (t *traced) BlackPixel() uint32             { return t.d.BlackPixel() }
func (t *traced) TextWidth(f Font, s string) int { return t.d.TextWidth(f, s) }

func (t *traced) CreateWindow(parent Window, r geometry.Rect, opts WindowOptions) (Window, error) {
	t.note("CreateWindow", logrus.Fields{"parent": parent, "rect": r, "override_redirect": opts.OverrideRedirect})
	w, err := t.d.CreateWindow(parent, r, opts)
	t.fail("CreateWindow", err)
	if err == nil {
		t.log.WithField("window", w).Debug("CreateWindow returned")
	}
	return w, err
}

func (t *traced) DestroyWindow(w Window) error {
	t.note("DestroyWindow", win(w))
	return t.d.DestroyWindow(w)
}

func (t *traced) MapWindow(w Window) error {
	t.note("MapWindow", win(w))
	return t.d.MapWindow(w)
}

func (t *traced) UnmapWindow(w Window) error {
	t.note("UnmapWindow", win(w))
	return t.d.UnmapWindow(w)
}

func (t *traced) RaiseWindow(w Window) error {
	t.note("RaiseWindow", win(w))
	return t.d.RaiseWindow(w)
}

func (t *traced) MoveWindow(w Window, x, y int) error {
	t.note("MoveWindow", logrus.Fields{"window": w, "x": x, "y": y})
	return t.d.MoveWindow(w, x, y)
}

func (t *traced) ResizeWindow(w Window, width, height int) error {
	t.note("ResizeWindow", logrus.Fields{"window": w, "width": width, "height": height})
	return t.d.ResizeWindow(w, width, height)
}

func (t *traced) MoveResizeWindow(w Window, r geometry.Rect) error {
	t.note("MoveResizeWindow", logrus.Fields{"window": w, "rect": r})
	return t.d.MoveResizeWindow(w, r)
}

func (t *traced) Configure(w Window, req ConfigureRequest) error {
	t.note("Configure", logrus.Fields{"window": w, "mask": req.ValueMask, "x": req.X, "y": req.Y,
		"width": req.Width, "height": req.Height})
	return t.d.Configure(w, req)
}

func (t *traced) ReparentWindow(w, parent Window, x, y int) error {
	t.note("ReparentWindow", logrus.Fields{"window": w, "parent": parent, "x": x, "y": y})
	return t.d.ReparentWindow(w, parent, x, y)
}

func (t *traced) SetBorderWidth(w Window, width int) error {
	t.note("SetBorderWidth", logrus.Fields{"window": w, "width": width})
	return t.d.SetBorderWidth(w, width)
}

func (t *traced) SetBackground(w Window, pixel uint32) error {
	t.note("SetBackground", logrus.Fields{"window": w, "pixel": pixel})
	return t.d.SetBackground(w, pixel)
}

func (t *traced) SelectInput(w Window, mask uint32) error {
	t.note("SelectInput", logrus.Fields{"window": w, "mask": mask})
	return t.d.SelectInput(w, mask)
}

func (t *traced) AddToSaveSet(w Window) error {
	t.note("AddToSaveSet", win(w))
	return t.d.AddToSaveSet(w)
}

func (t *traced) Redraw(w Window) error {
	t.note("Redraw", win(w))
	return t.d.Redraw(w)
}

func (t *traced) Attributes(w Window) (Attributes, error) {
	t.note("Attributes", win(w))
	a, err := t.d.Attributes(w)
	t.fail("Attributes", err)
	return a, err
}

func (t *traced) Geometry(w Window) (geometry.Rect, error) {
	t.note("Geometry", win(w))
	r, err := t.d.Geometry(w)
	t.fail("Geometry", err)
	return r, err
}

func (t *traced) Children(w Window) ([]Window, error) {
	t.note("Children", win(w))
	c, err := t.d.Children(w)
	t.fail("Children", err)
	return c, err
}

func (t *traced) SetInputFocus(w Window) error {
	t.note("SetInputFocus", win(w))
	return t.d.SetInputFocus(w)
}

func (t *traced) GrabButton(w Window) error {
	t.note("GrabButton", win(w))
	return t.d.GrabButton(w)
}

func (t *traced) ReplayPointer() error {
	t.note("ReplayPointer", nil)
	return t.d.ReplayPointer()
}

func (t *traced) KillClient(w Window) error {
	t.note("KillClient", win(w))
	return t.d.KillClient(w)
}

func (t *traced) SendDeleteWindow(w Window) error {
	t.note("SendDeleteWindow", win(w))
	err := t.d.SendDeleteWindow(w)
	t.fail("SendDeleteWindow", err)
	return err
}

func (t *traced) SendConfigureNotify(w Window, r geometry.Rect, border int) error {
	t.note("SendConfigureNotify", logrus.Fields{"window": w, "rect": r, "border": border})
	err := t.d.SendConfigureNotify(w, r, border)
	t.fail("SendConfigureNotify", err)
	return err
}

func (t *traced) DefineCursor(w Window, glyph uint16) error {
	t.note("DefineCursor", logrus.Fields{"window": w, "glyph": glyph})
	return t.d.DefineCursor(w, glyph)
}

func (t *traced) UndefineCursor(w Window) error {
	t.note("UndefineCursor", win(w))
	return t.d.UndefineCursor(w)
}

func (t *traced) AllocColor(name string) (uint32, error) {
	t.note("AllocColor", logrus.Fields{"name": name})
	p, err := t.d.AllocColor(name)
	t.fail("AllocColor", err)
	return p, err
}

func (t *traced) OpenFont(names []string) (Font, error) {
	t.note("OpenFont", logrus.Fields{"names": names})
	f, err := t.d.OpenFont(names)
	t.fail("OpenFont", err)
	return f, err
}

func (t *traced) CreateGC(w Window, foreground uint32, font Font) (GC, error) {
	t.note("CreateGC", logrus.Fields{"window": w, "foreground": foreground, "font": font.Name})
	gc, err := t.d.CreateGC(w, foreground, font)
	t.fail("CreateGC", err)
	return gc, err
}

func (t *traced) FreeGC(gc GC) error {
	t.note("FreeGC", logrus.Fields{"gc": gc})
	return t.d.FreeGC(gc)
}

func (t *traced) FillRectangle(w Window, gc GC, r geometry.Rect) error {
	t.note("FillRectangle", logrus.Fields{"window": w, "gc": gc, "rect": r})
	return t.d.FillRectangle(w, gc, r)
}

func (t *traced) DrawRectangle(w Window, gc GC, r geometry.Rect) error {
	t.note("DrawRectangle", logrus.Fields{"window": w, "gc": gc, "rect": r})
	return t.d.DrawRectangle(w, gc, r)
}

func (t *traced) DrawLine(w Window, gc GC, x1, y1, x2, y2 int) error {
	t.note("DrawLine", logrus.Fields{"window": w, "gc": gc, "x1": x1, "y1": y1, "x2": x2, "y2": y2})
	return t.d.DrawLine(w, gc, x1, y1, x2, y2)
}

func (t *traced) DrawText(w Window, gc GC, background uint32, x, y int, text string) error {
	t.note("DrawText", logrus.Fields{"window": w, "gc": gc, "x": x, "y": y, "text": text})
	return t.d.DrawText(w, gc, background, x, y, text)
}

func (t *traced) AtomName(atom xproto.Atom) (string, error) {
	return t.d.AtomName(atom)
}

func (t *traced) Title(w Window) (string, error) {
	t.note("Title", win(w))
	s, err := t.d.Title(w)
	t.fail("Title", err)
	return s, err
}

func (t *traced) SizeIncrements(w Window) (int, int, error) {
	t.note("SizeIncrements", win(w))
	x, y, err := t.d.SizeIncrements(w)
	t.fail("SizeIncrements", err)
	return x, y, err
}

func (t *traced) Protocols(w Window) ([]string, error) {
	t.note("Protocols", win(w))
	p, err := t.d.Protocols(w)
	t.fail("Protocols", err)
	return p, err
}

func (t *traced) SetWMState(w Window, iconic bool) error {
	t.note("SetWMState", logrus.Fields{"window": w, "iconic": iconic})
	return t.d.SetWMState(w, iconic)
}

func (t *traced) Announce(check Window, name string) error {
	t.note("Announce", logrus.Fields{"window": check, "name": name})
	return t.d.Announce(check, name)
}

func (t *traced) SetActiveWindow(w Window) error {
	t.note("SetActiveWindow", win(w))
	return t.d.SetActiveWindow(w)
}

func (t *traced) SetClientList(all, stacking []Window) error {
	t.note("SetClientList", logrus.Fields{"count": len(all)})
	return t.d.SetClientList(all, stacking)
}
