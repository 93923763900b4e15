package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

// KeyCodes resolves a keysym name such as "Escape" or "q" to the keycodes
// that currently produce it. Unknown names resolve to nil.
func (c *Connection) KeyCodes(keysym string) []xproto.Keycode {
	return keybind.StrToKeycodes(c.XUtil, keysym)
}
