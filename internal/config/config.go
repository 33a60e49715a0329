package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/fawm/internal/geometry"
	"github.com/1broseidon/fawm/internal/menu"
)

// Config is the user configuration file.
type Config struct {
	Menu       []MenuEntry `yaml:"menu"`
	Appearance Appearance  `yaml:"appearance"`
}

// MenuEntry is one popup item. Exactly one of Exec, Exit and Reload is set.
type MenuEntry struct {
	Caption string `yaml:"caption,omitempty"`
	Exec    string `yaml:"exec,omitempty"`
	Exit    bool   `yaml:"exit,omitempty"`
	Reload  bool   `yaml:"reload,omitempty"`
}

// Appearance controls fonts, colors and decoration sizes.
type Appearance struct {
	Font             string `yaml:"font"`
	ClockFont        string `yaml:"clock_font"`
	FocusedColor     string `yaml:"focused_color"`
	UnfocusedColor   string `yaml:"unfocused_color"`
	TextColor        string `yaml:"text_color"`
	BorderSize       int    `yaml:"border_size"`
	ClientBorderSize int    `yaml:"client_border_size"`
	FrameSize        int    `yaml:"frame_size"`
	CornerSize       int    `yaml:"corner_size"`
	Padding          int    `yaml:"padding"`
	PopupMargin      int    `yaml:"popup_margin"`
}

// FallbackFonts are tried in order when the configured font cannot be opened.
var FallbackFonts = []string{"fixed", "9x15", "8x13", "6x13"}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Menu: []MenuEntry{
			{Caption: "xterm", Exec: "xterm"},
			{Reload: true},
			{Exit: true},
		},
		Appearance: DefaultAppearance(),
	}
}

// DefaultAppearance returns the stock decoration settings.
func DefaultAppearance() Appearance {
	return Appearance{
		Font:             "fixed",
		FocusedColor:     "light pink",
		UnfocusedColor:   "light grey",
		TextColor:        "black",
		BorderSize:       1,
		ClientBorderSize: 1,
		FrameSize:        4,
		CornerSize:       32,
		Padding:          4,
		PopupMargin:      8,
	}
}

// Kind returns the menu item kind of the entry.
func (e MenuEntry) Kind() menu.Kind {
	switch {
	case e.Exit:
		return menu.KindExit
	case e.Reload:
		return menu.KindReload
	}
	return menu.KindExec
}

// MenuItems converts the menu section into popup items.
func (c *Config) MenuItems() []menu.Item {
	items := make([]menu.Item, 0, len(c.Menu))
	for _, e := range c.Menu {
		it := menu.Item{Kind: e.Kind(), Caption: e.Caption}
		if it.Kind == menu.KindExec {
			it.Command = e.Exec
			if strings.TrimSpace(it.Caption) == "" {
				it.Caption = e.Exec
			}
		}
		items = append(items, it)
	}
	return items
}

// Decoration returns the frame sizes for a title font of the given height.
func (a Appearance) Decoration(titleHeight int) geometry.Decoration {
	return geometry.Decoration{
		BorderSize:       a.BorderSize,
		ClientBorderSize: a.ClientBorderSize,
		FrameSize:        a.FrameSize,
		TitleHeight:      titleHeight,
		CornerSize:       a.CornerSize,
	}
}

// Fonts returns the title font followed by the fallbacks not already listed.
func (a Appearance) Fonts() []string {
	return fontList(a.Font)
}

// ClockFonts is like Fonts for the taskbar clock.
func (a Appearance) ClockFonts() []string {
	if strings.TrimSpace(a.ClockFont) == "" {
		return a.Fonts()
	}
	return fontList(a.ClockFont)
}

func fontList(first string) []string {
	out := []string{}
	if first = strings.TrimSpace(first); first != "" {
		out = append(out, first)
	}
	for _, f := range FallbackFonts {
		if f != first {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the configuration for values fawm cannot work with.
func (c *Config) Validate() error {
	for i, e := range c.Menu {
		path := fmt.Sprintf("menu[%d]", i)
		set := 0
		if e.Exec != "" {
			set++
		}
		if e.Exit {
			set++
		}
		if e.Reload {
			set++
		}
		if set != 1 {
			return &ValidationError{Path: path, Err: fmt.Errorf("entry must set exactly one of exec, exit, reload")}
		}
		if e.Exec != "" && strings.TrimSpace(e.Exec) == "" {
			return &ValidationError{Path: path + ".exec", Err: fmt.Errorf("command must not be blank")}
		}
		if strings.ContainsRune(e.Caption, 0) || strings.ContainsRune(e.Exec, 0) {
			return &ValidationError{Path: path, Err: fmt.Errorf("caption and command must not contain NUL")}
		}
	}

	a := c.Appearance
	if a.BorderSize < 0 {
		return &ValidationError{Path: "appearance.border_size", Err: fmt.Errorf("border_size must be >= 0")}
	}
	if a.ClientBorderSize < 0 {
		return &ValidationError{Path: "appearance.client_border_size", Err: fmt.Errorf("client_border_size must be >= 0")}
	}
	if a.FrameSize < 1 {
		return &ValidationError{Path: "appearance.frame_size", Err: fmt.Errorf("frame_size must be >= 1")}
	}
	if a.CornerSize <= a.FrameSize {
		return &ValidationError{Path: "appearance.corner_size", Err: fmt.Errorf("corner_size must be greater than frame_size")}
	}
	if a.Padding < 0 {
		return &ValidationError{Path: "appearance.padding", Err: fmt.Errorf("padding must be >= 0")}
	}
	if a.PopupMargin < 0 {
		return &ValidationError{Path: "appearance.popup_margin", Err: fmt.Errorf("popup_margin must be >= 0")}
	}
	colors := []struct{ path, name string }{
		{"appearance.focused_color", a.FocusedColor},
		{"appearance.unfocused_color", a.UnfocusedColor},
		{"appearance.text_color", a.TextColor},
	}
	for _, col := range colors {
		if strings.TrimSpace(col.name) == "" {
			return &ValidationError{Path: col.path, Err: fmt.Errorf("color name must not be empty")}
		}
	}
	return nil
}
