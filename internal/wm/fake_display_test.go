package wm

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/platform"
)

const fakeRoot platform.Window = 1

const (
	atomNetWMName    xproto.Atom = 300
	atomWMProtocols  xproto.Atom = 301
	atomChangeState  xproto.Atom = 302
	atomActiveWindow xproto.Atom = 303
)

type fakeWindow struct {
	parent     platform.Window
	rect       geometry.Rect
	border     int
	mapped     bool
	override   bool
	background uint32
	cursor     uint16

	title      string
	protocols  []string
	incW, incH int
}

// fakeDisplay keeps just enough window state in memory to drive the
// manager without a server.
type fakeDisplay struct {
	width, height int

	next    platform.Window
	nextGC  platform.GC
	windows map[platform.Window]*fakeWindow
	gcs     map[platform.GC]bool
	atoms   map[xproto.Atom]string

	focus     platform.Window
	active    platform.Window
	raised    []platform.Window
	killed    []platform.Window
	deleted   []platform.Window
	notified  []geometry.Rect
	passed    []platform.ConfigureRequest
	redraws   map[platform.Window]int
	texts     []string
	iconic    map[platform.Window]bool
	replays   int
	clients   []platform.Window
	stacking  []platform.Window
	announced string
}

func newFakeDisplay(width, height int) *fakeDisplay {
	d := &fakeDisplay{
		width:   width,
		height:  height,
		next:    0x100,
		windows: map[platform.Window]*fakeWindow{},
		gcs:     map[platform.GC]bool{},
		redraws: map[platform.Window]int{},
		iconic:  map[platform.Window]bool{},
		atoms: map[xproto.Atom]string{
			xproto.AtomWmName:        "WM_NAME",
			xproto.AtomWmNormalHints: "WM_NORMAL_HINTS",
			atomNetWMName:            "_NET_WM_NAME",
			atomWMProtocols:          "WM_PROTOCOLS",
			atomChangeState:          "WM_CHANGE_STATE",
			atomActiveWindow:         "_NET_ACTIVE_WINDOW",
		},
	}
	d.windows[fakeRoot] = &fakeWindow{rect: geometry.Rect{Width: width, Height: height}, mapped: true}
	return d
}

// addClient creates a mapped top-level window the way a client would.
func (d *fakeDisplay) addClient(title string, r geometry.Rect, protocols ...string) platform.Window {
	d.next++
	d.windows[d.next] = &fakeWindow{
		parent:    fakeRoot,
		rect:      r,
		mapped:    true,
		title:     title,
		protocols: protocols,
	}
	return d.next
}

func (d *fakeDisplay) window(w platform.Window) (*fakeWindow, error) {
	fw, ok := d.windows[w]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", w, platform.ErrNoSuchWindow)
	}
	return fw, nil
}

func (d *fakeDisplay) update(w platform.Window, fn func(*fakeWindow)) error {
	fw, err := d.window(w)
	if err != nil {
		return err
	}
	fn(fw)
	return nil
}

func (d *fakeDisplay) Root() platform.Window  { return fakeRoot }
func (d *fakeDisplay) ScreenSize() (int, int) { return d.width, d.height }
func (d *fakeDisplay) BlackPixel() uint32     { return 0 }
func (d *fakeDisplay) TextWidth(_ platform.Font, s string) int {
	return 6 * len(s)
}

func (d *fakeDisplay) CreateWindow(parent platform.Window, r geometry.Rect, opts platform.WindowOptions) (platform.Window, error) {
	if _, err := d.window(parent); err != nil {
		return 0, err
	}
	d.next++
	d.windows[d.next] = &fakeWindow{
		parent:     parent,
		rect:       r,
		border:     opts.BorderWidth,
		override:   opts.OverrideRedirect,
		background: opts.Background,
	}
	return d.next, nil
}

func (d *fakeDisplay) DestroyWindow(w platform.Window) error {
	if _, err := d.window(w); err != nil {
		return err
	}
	delete(d.windows, w)
	for id, fw := range d.windows {
		if fw.parent == w {
			delete(d.windows, id)
		}
	}
	return nil
}

func (d *fakeDisplay) MapWindow(w platform.Window) error {
	return d.update(w, func(fw *fakeWindow) { fw.mapped = true })
}

func (d *fakeDisplay) UnmapWindow(w platform.Window) error {
	return d.update(w, func(fw *fakeWindow) { fw.mapped = false })
}

func (d *fakeDisplay) RaiseWindow(w platform.Window) error {
	d.raised = append(d.raised, w)
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) MoveWindow(w platform.Window, x, y int) error {
	return d.update(w, func(fw *fakeWindow) { fw.rect.X, fw.rect.Y = x, y })
}

func (d *fakeDisplay) ResizeWindow(w platform.Window, width, height int) error {
	return d.update(w, func(fw *fakeWindow) { fw.rect.Width, fw.rect.Height = width, height })
}

func (d *fakeDisplay) MoveResizeWindow(w platform.Window, r geometry.Rect) error {
	return d.update(w, func(fw *fakeWindow) { fw.rect = r })
}

func (d *fakeDisplay) Configure(w platform.Window, req platform.ConfigureRequest) error {
	d.passed = append(d.passed, req)
	return d.update(w, func(fw *fakeWindow) {
		if req.ValueMask&xproto.ConfigWindowX != 0 {
			fw.rect.X = req.X
		}
		if req.ValueMask&xproto.ConfigWindowY != 0 {
			fw.rect.Y = req.Y
		}
		if req.ValueMask&xproto.ConfigWindowWidth != 0 {
			fw.rect.Width = req.Width
		}
		if req.ValueMask&xproto.ConfigWindowHeight != 0 {
			fw.rect.Height = req.Height
		}
	})
}

func (d *fakeDisplay) ReparentWindow(w, parent platform.Window, x, y int) error {
	if _, err := d.window(parent); err != nil {
		return err
	}
	return d.update(w, func(fw *fakeWindow) {
		fw.parent = parent
		fw.rect.X, fw.rect.Y = x, y
	})
}

func (d *fakeDisplay) SetBorderWidth(w platform.Window, width int) error {
	return d.update(w, func(fw *fakeWindow) { fw.border = width })
}

func (d *fakeDisplay) SetBackground(w platform.Window, pixel uint32) error {
	return d.update(w, func(fw *fakeWindow) { fw.background = pixel })
}

func (d *fakeDisplay) SelectInput(w platform.Window, _ uint32) error {
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) AddToSaveSet(w platform.Window) error {
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) Redraw(w platform.Window) error {
	d.redraws[w]++
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) Attributes(w platform.Window) (platform.Attributes, error) {
	fw, err := d.window(w)
	if err != nil {
		return platform.Attributes{}, err
	}
	return platform.Attributes{OverrideRedirect: fw.override, Mapped: fw.mapped, BorderWidth: fw.border}, nil
}

func (d *fakeDisplay) Geometry(w platform.Window) (geometry.Rect, error) {
	fw, err := d.window(w)
	if err != nil {
		return geometry.Rect{}, err
	}
	return fw.rect, nil
}

func (d *fakeDisplay) Children(w platform.Window) ([]platform.Window, error) {
	if _, err := d.window(w); err != nil {
		return nil, err
	}
	var out []platform.Window
	for id, fw := range d.windows {
		if fw.parent == w && id != fakeRoot {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (d *fakeDisplay) SetInputFocus(w platform.Window) error {
	d.focus = w
	return nil
}

func (d *fakeDisplay) GrabButton(w platform.Window) error {
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) ReplayPointer() error {
	d.replays++
	return nil
}

func (d *fakeDisplay) KillClient(w platform.Window) error {
	d.killed = append(d.killed, w)
	return nil
}

func (d *fakeDisplay) SendDeleteWindow(w platform.Window) error {
	if _, err := d.window(w); err != nil {
		return err
	}
	d.deleted = append(d.deleted, w)
	return nil
}

func (d *fakeDisplay) SendConfigureNotify(w platform.Window, r geometry.Rect, _ int) error {
	d.notified = append(d.notified, r)
	return nil
}

func (d *fakeDisplay) DefineCursor(w platform.Window, glyph uint16) error {
	return d.update(w, func(fw *fakeWindow) { fw.cursor = glyph })
}

func (d *fakeDisplay) UndefineCursor(w platform.Window) error {
	return d.update(w, func(fw *fakeWindow) { fw.cursor = 0 })
}

var fakePixels = map[string]uint32{
	"light pink": 0xffb6c1,
	"light grey": 0xd3d3d3,
	"black":      0x000000,
}

func (d *fakeDisplay) AllocColor(name string) (uint32, error) {
	p, ok := fakePixels[name]
	if !ok {
		return 0, fmt.Errorf("unknown color %q", name)
	}
	return p, nil
}

func (d *fakeDisplay) OpenFont(names []string) (platform.Font, error) {
	return platform.Font{ID: 1, Name: names[0], Ascent: 10, Descent: 3}, nil
}

func (d *fakeDisplay) CreateGC(w platform.Window, _ uint32, _ platform.Font) (platform.GC, error) {
	if _, err := d.window(w); err != nil {
		return 0, err
	}
	d.nextGC++
	d.gcs[d.nextGC] = true
	return d.nextGC, nil
}

func (d *fakeDisplay) FreeGC(gc platform.GC) error {
	if !d.gcs[gc] {
		return fmt.Errorf("bad gc %d", gc)
	}
	delete(d.gcs, gc)
	return nil
}

func (d *fakeDisplay) FillRectangle(w platform.Window, _ platform.GC, _ geometry.Rect) error {
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) DrawRectangle(w platform.Window, _ platform.GC, _ geometry.Rect) error {
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) DrawLine(w platform.Window, _ platform.GC, _, _, _, _ int) error {
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) DrawText(w platform.Window, _ platform.GC, _ uint32, _, _ int, text string) error {
	d.texts = append(d.texts, text)
	return d.update(w, func(*fakeWindow) {})
}

func (d *fakeDisplay) AtomName(atom xproto.Atom) (string, error) {
	name, ok := d.atoms[atom]
	if !ok {
		return "", fmt.Errorf("bad atom %d", atom)
	}
	return name, nil
}

func (d *fakeDisplay) Title(w platform.Window) (string, error) {
	fw, err := d.window(w)
	if err != nil {
		return "", err
	}
	return fw.title, nil
}

func (d *fakeDisplay) SizeIncrements(w platform.Window) (int, int, error) {
	fw, err := d.window(w)
	if err != nil {
		return 1, 1, err
	}
	if fw.incW < 1 || fw.incH < 1 {
		return 1, 1, nil
	}
	return fw.incW, fw.incH, nil
}

func (d *fakeDisplay) Protocols(w platform.Window) ([]string, error) {
	fw, err := d.window(w)
	if err != nil {
		return nil, err
	}
	return fw.protocols, nil
}

func (d *fakeDisplay) SetWMState(w platform.Window, iconic bool) error {
	d.iconic[w] = iconic
	return nil
}

func (d *fakeDisplay) Announce(check platform.Window, name string) error {
	d.announced = name
	return d.update(check, func(*fakeWindow) {})
}

func (d *fakeDisplay) SetActiveWindow(w platform.Window) error {
	d.active = w
	return nil
}

func (d *fakeDisplay) SetClientList(all, stacking []platform.Window) error {
	d.clients = append([]platform.Window(nil), all...)
	d.stacking = append([]platform.Window(nil), stacking...)
	return nil
}
