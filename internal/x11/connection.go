package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Connection manages the X11 connection used by the tray host.
//
// The underlying xgb connection is safe for concurrent use; requests from the
// event loop and the control server may be issued from different goroutines.
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	display string
}

// Screen describes one root screen of the display.
type Screen struct {
	Num        int
	Root       xproto.Window
	Visual     xproto.Visualid
	BlackPixel uint32
}

// Dial connects to the given X display. An empty display uses $DISPLAY.
func Dial(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, &ConnectionError{Display: display, Err: err}
	}

	// Initialize keybind module (required for keysym -> keycode lookups)
	keybind.Initialize(xu)

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		display: display,
	}, nil
}

// DefaultScreen returns the screen number the connection was opened on.
func (c *Connection) DefaultScreen() int {
	return c.XUtil.Conn().DefaultScreen
}

// Screen looks up a screen by index.
func (c *Connection) Screen(num int) (Screen, bool) {
	setup := xproto.Setup(c.XUtil.Conn())
	if setup == nil || num < 0 || num >= len(setup.Roots) {
		return Screen{}, false
	}
	info := setup.Roots[num]
	return Screen{
		Num:        num,
		Root:       info.Root,
		Visual:     info.RootVisual,
		BlackPixel: info.BlackPixel,
	}, true
}

// Flush forces all queued requests to the server and waits for them to be
// processed.
func (c *Connection) Flush() {
	c.XUtil.Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
