package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Event is the closed set of X events the tray host reacts to. Everything
// else decodes to Unknown.
type Event interface {
	isEvent()
}

// DestroyNotify reports that Window was destroyed.
type DestroyNotify struct {
	Window xproto.Window
}

// ClientMessage is a client message addressed to Window.
type ClientMessage struct {
	Window xproto.Window
	Type   xproto.Atom
	Format byte
	Data   [5]uint32
}

// KeyPress is a key press delivered to Window.
type KeyPress struct {
	Window xproto.Window
	Detail xproto.Keycode
	State  uint16
}

// Unknown is any event without a dedicated arm.
type Unknown struct {
	Name string
}

func (DestroyNotify) isEvent() {}
func (ClientMessage) isEvent() {}
func (KeyPress) isEvent()      {}
func (Unknown) isEvent()       {}

// Decode maps a raw xgb event onto the Event variant.
func Decode(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.DestroyNotifyEvent:
		return DestroyNotify{Window: e.Window}
	case xproto.ClientMessageEvent:
		msg := ClientMessage{Window: e.Window, Type: e.Type, Format: e.Format}
		if e.Format == 32 {
			copy(msg.Data[:], e.Data.Data32)
		}
		return msg
	case xproto.KeyPressEvent:
		return KeyPress{Window: e.Event, Detail: e.Detail, State: e.State}
	case nil:
		return Unknown{}
	default:
		return Unknown{Name: ev.String()}
	}
}

// WaitForEvent blocks until the next event arrives. Asynchronous X errors
// are returned as *ProtocolError; a closed connection as ErrConnectionClosed.
func (c *Connection) WaitForEvent() (Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, ErrConnectionClosed
	}
	if xerr != nil {
		return nil, &ProtocolError{Op: "event queue", Err: xerr}
	}
	return Decode(ev), nil
}
