package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Atom names used by the system tray and XEmbed protocols.
const (
	AtomTrayOpcode        = "_NET_SYSTEM_TRAY_OPCODE"
	AtomManager           = "MANAGER"
	AtomXEmbed            = "_XEMBED"
	AtomXEmbedInfo        = "_XEMBED_INFO"
	AtomWMProtocols       = "WM_PROTOCOLS"
	AtomWMDeleteWindow    = "WM_DELETE_WINDOW"
	WindowTypeUtility     = "_NET_WM_WINDOW_TYPE_UTILITY"
	traySelectionTemplate = "_NET_SYSTEM_TRAY_S%d"
)

// TraySelectionName returns the screen-specific tray selection atom name.
func TraySelectionName(screen int) string {
	return fmt.Sprintf(traySelectionTemplate, screen)
}

// Atom interns name, creating it if needed. Results are cached per connection.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, protocolErr("intern_atom "+name, err)
	}
	return atom, nil
}
