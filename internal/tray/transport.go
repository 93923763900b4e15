package tray

import (
	"github.com/1broseidon/traydock/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Transport is the windowing-server capability the tray manager drives.
// *x11.Connection implements it.
type Transport interface {
	DefaultScreen() int
	Screen(num int) (x11.Screen, bool)
	Atom(name string) (xproto.Atom, error)
	KeyCodes(keysym string) []xproto.Keycode

	NewWindowID() (xproto.Window, error)
	CreateWindow(win, parent xproto.Window, visual xproto.Visualid, x, y int16, width, height uint16, valueMask uint32, values []uint32) error
	MapWindow(win xproto.Window) error
	UnmapWindow(win xproto.Window) error
	DestroyWindow(win xproto.Window) error
	ReparentWindow(child, parent xproto.Window, x, y int16) error
	ConfigureWindow(win xproto.Window, mask uint16, values []uint32) error
	ChangeWindowAttributes(win xproto.Window, mask uint32, values []uint32) error
	MapState(win xproto.Window) (byte, error)

	GetProperty(win xproto.Window, prop, typ xproto.Atom, maxLen uint32) (*xproto.GetPropertyReply, error)
	SetClass(win xproto.Window, instance, class string) error
	SetTitle(win xproto.Window, title string) error
	SetWindowType(win xproto.Window, types ...string) error
	SetProtocols(win xproto.Window, protocols ...string) error
	WindowName(win xproto.Window) (string, error)

	SendEvent(dest xproto.Window, mask uint32, ev xproto.ClientMessageEvent) error
	SelectionOwner(selection xproto.Atom) (xproto.Window, error)
	SetSelectionOwner(win xproto.Window, selection xproto.Atom) error
	ChangeSaveSet(mode byte, win xproto.Window) error

	WaitForEvent() (x11.Event, error)
	Flush()
}

var _ Transport = (*x11.Connection)(nil)
