package tray

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// XEmbedMapped is the XEMBED_MAPPED bit of the _XEMBED_INFO flags word.
const XEmbedMapped = 1 << 0

// Client is a foreign window embedded into the tray.
type Client struct {
	Window        xproto.Window
	Name          string // cached at dock time; empty when unresolvable
	XEmbedVersion uint32
	XEmbedFlags   uint32
}

// DisplayName returns the cached name, or a placeholder built from the handle.
func (c Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("window 0x%x", uint32(c.Window))
}

func (c Client) String() string {
	return fmt.Sprintf("{%d %q}", c.Window, c.Name)
}
