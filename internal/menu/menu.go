// Package menu models the popup menu and its compiled binary form.
package menu

import "fmt"

// Kind tags a menu item.
type Kind int32

const (
	KindExec   Kind = 0
	KindExit   Kind = 1
	KindReload Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindExec:
		return "exec"
	case KindExit:
		return "exit"
	case KindReload:
		return "reload"
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

func (k Kind) valid() bool {
	return k == KindExec || k == KindExit || k == KindReload
}

// Item is one popup menu entry. Command is only meaningful for KindExec.
type Item struct {
	Kind    Kind
	Caption string
	Command string
}

// Label is the text shown in the popup.
func (i Item) Label() string {
	if i.Caption != "" {
		return i.Caption
	}
	switch i.Kind {
	case KindExit:
		return "exit"
	case KindReload:
		return "reload"
	}
	return i.Command
}

// Menu is the ordered list of popup entries.
type Menu struct {
	Items []Item
}

// Len returns the number of items.
func (m *Menu) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Items)
}

// At returns item i, or false when i is out of range.
func (m *Menu) At(i int) (Item, bool) {
	if m == nil || i < 0 || i >= len(m.Items) {
		return Item{}, false
	}
	return m.Items[i], true
}
