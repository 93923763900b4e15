package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// GetProperty reads at most maxLen 32-bit units of prop from win.
// Use xproto.GetPropertyTypeAny to accept any type.
func (c *Connection) GetProperty(win xproto.Window, prop, typ xproto.Atom, maxLen uint32) (*xproto.GetPropertyReply, error) {
	reply, err := xproto.GetProperty(c.XUtil.Conn(), false, win, prop, typ, 0, maxLen).Reply()
	if err != nil {
		return nil, protocolErr("get_property", err)
	}
	return reply, nil
}

// SetClass sets WM_CLASS.
func (c *Connection) SetClass(win xproto.Window, instance, class string) error {
	err := icccm.WmClassSet(c.XUtil, win, &icccm.WmClass{Instance: instance, Class: class})
	return protocolErr("change_property WM_CLASS", err)
}

// SetTitle sets both WM_NAME and _NET_WM_NAME.
func (c *Connection) SetTitle(win xproto.Window, title string) error {
	if err := icccm.WmNameSet(c.XUtil, win, title); err != nil {
		return protocolErr("change_property WM_NAME", err)
	}
	return protocolErr("change_property _NET_WM_NAME", ewmh.WmNameSet(c.XUtil, win, title))
}

// SetWindowType sets _NET_WM_WINDOW_TYPE.
func (c *Connection) SetWindowType(win xproto.Window, types ...string) error {
	return protocolErr("change_property _NET_WM_WINDOW_TYPE", ewmh.WmWindowTypeSet(c.XUtil, win, types))
}

// SetProtocols sets WM_PROTOCOLS.
func (c *Connection) SetProtocols(win xproto.Window, protocols ...string) error {
	return protocolErr("change_property WM_PROTOCOLS", icccm.WmProtocolsSet(c.XUtil, win, protocols))
}

// WindowName returns _NET_WM_NAME, falling back to the ICCCM WM_NAME.
func (c *Connection) WindowName(win xproto.Window) (string, error) {
	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
		return name, nil
	}
	name, err := icccm.WmNameGet(c.XUtil, win)
	if err != nil {
		return "", protocolErr("get_property WM_NAME", err)
	}
	return name, nil
}
