package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// NewWindowID allocates a fresh window id on the connection.
func (c *Connection) NewWindowID() (xproto.Window, error) {
	win, err := xproto.NewWindowId(c.XUtil.Conn())
	return win, protocolErr("new_window_id", err)
}

// CreateWindow creates an InputOutput window with the parent's depth.
func (c *Connection) CreateWindow(win, parent xproto.Window, visual xproto.Visualid, x, y int16, width, height uint16, valueMask uint32, values []uint32) error {
	err := xproto.CreateWindowChecked(
		c.XUtil.Conn(),
		0, // depth copied from parent
		win,
		parent,
		x, y, width, height,
		0,
		xproto.WindowClassInputOutput,
		visual,
		valueMask,
		values,
	).Check()
	return protocolErr("create_window", err)
}

func (c *Connection) MapWindow(win xproto.Window) error {
	return protocolErr("map_window", xproto.MapWindowChecked(c.XUtil.Conn(), win).Check())
}

func (c *Connection) UnmapWindow(win xproto.Window) error {
	return protocolErr("unmap_window", xproto.UnmapWindowChecked(c.XUtil.Conn(), win).Check())
}

func (c *Connection) DestroyWindow(win xproto.Window) error {
	return protocolErr("destroy_window", xproto.DestroyWindowChecked(c.XUtil.Conn(), win).Check())
}

// ReparentWindow moves child under parent at (x, y).
func (c *Connection) ReparentWindow(child, parent xproto.Window, x, y int16) error {
	err := xproto.ReparentWindowChecked(c.XUtil.Conn(), child, parent, x, y).Check()
	return protocolErr("reparent_window", err)
}

// ConfigureWindow applies values in ascending ConfigWindow* bit order.
func (c *Connection) ConfigureWindow(win xproto.Window, mask uint16, values []uint32) error {
	err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), win, mask, values).Check()
	return protocolErr("configure_window", err)
}

func (c *Connection) ChangeWindowAttributes(win xproto.Window, mask uint32, values []uint32) error {
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), win, mask, values).Check()
	return protocolErr("change_window_attributes", err)
}

// MapState returns the window's current map state
// (xproto.MapStateUnmapped, MapStateUnviewable or MapStateViewable).
func (c *Connection) MapState(win xproto.Window) (byte, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return 0, protocolErr("get_window_attributes", err)
	}
	return attrs.MapState, nil
}

// SendEvent delivers a client message to dest.
func (c *Connection) SendEvent(dest xproto.Window, mask uint32, ev xproto.ClientMessageEvent) error {
	err := xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		dest,
		mask,
		string(ev.Bytes()),
	).Check()
	return protocolErr("send_event", err)
}

// SelectionOwner returns the current owner of selection, or xproto.WindowNone.
func (c *Connection) SelectionOwner(selection xproto.Atom) (xproto.Window, error) {
	reply, err := xproto.GetSelectionOwner(c.XUtil.Conn(), selection).Reply()
	if err != nil {
		return 0, protocolErr("get_selection_owner", err)
	}
	return reply.Owner, nil
}

func (c *Connection) SetSelectionOwner(win xproto.Window, selection xproto.Atom) error {
	err := xproto.SetSelectionOwnerChecked(c.XUtil.Conn(), win, selection, xproto.TimeCurrentTime).Check()
	return protocolErr("set_selection_owner", err)
}

// ChangeSaveSet adds (xproto.SetModeInsert) or removes a window from the
// client's save-set.
func (c *Connection) ChangeSaveSet(mode byte, win xproto.Window) error {
	err := xproto.ChangeSaveSetChecked(c.XUtil.Conn(), mode, win).Check()
	return protocolErr("change_save_set", err)
}
