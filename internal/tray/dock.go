package tray

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

const (
	// System tray protocol opcodes carried in data[1] of _NET_SYSTEM_TRAY_OPCODE.
	opcodeRequestDock = 0

	// XEmbed message carried in data[1] of _XEMBED.
	xembedEmbeddedNotify = 0

	// _XEMBED_INFO is two CARD32s: version and flags.
	xembedInfoLength = 2

	clientEventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
)

// dock embeds win into the tray window. The client is only registered once
// every step succeeded.
func (m *Manager) dock(win xproto.Window) error {
	if m.clients.Contains(win) {
		return fmt.Errorf("dock %d: %w", win, ErrAlreadyDocked)
	}

	client := Client{Window: win}
	if name, err := m.t.WindowName(win); err != nil {
		m.logger.Warn("couldn't get client name", "window", win, "error", err)
	} else {
		client.Name = name
	}

	// StructureNotify is how we learn the client went away.
	if err := m.t.ChangeWindowAttributes(win, xproto.CwEventMask, []uint32{clientEventMask}); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}

	info, err := m.xembedInfo(win)
	if err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}
	client.XEmbedVersion = info[0]
	client.XEmbedFlags = info[1]
	m.logger.Info("docking client",
		"window", win,
		"name", client.Name,
		"xembed_version", client.XEmbedVersion,
		"xembed_flags", client.XEmbedFlags)

	if err := m.t.ReparentWindow(win, m.window, 0, 0); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}
	size := m.layout.IconSize
	if err := m.t.ConfigureWindow(win, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight, []uint32{size, size}); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}
	// Restores the client to the root window if we exit unexpectedly.
	if err := m.t.ChangeSaveSet(xproto.SetModeInsert, win); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}
	if err := m.sendEmbeddedNotify(client); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}
	if err := m.t.MapWindow(win); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}

	if err := m.clients.Add(client); err != nil {
		return fmt.Errorf("dock %d: %w", win, err)
	}
	if err := m.reflow(); err != nil {
		return err
	}
	m.t.Flush()
	return nil
}

func (m *Manager) xembedInfo(win xproto.Window) ([2]uint32, error) {
	var info [2]uint32
	nums, err := xprop.PropValNums(m.t.GetProperty(win, m.atoms.xembedInfo, xproto.GetPropertyTypeAny, xembedInfoLength))
	if err != nil {
		return info, fmt.Errorf("read _XEMBED_INFO: %w", err)
	}
	if len(nums) < xembedInfoLength {
		return info, fmt.Errorf("read _XEMBED_INFO: expected %d values, got %d", xembedInfoLength, len(nums))
	}
	info[0] = uint32(nums[0])
	info[1] = uint32(nums[1])
	return info, nil
}

func (m *Manager) sendEmbeddedNotify(c Client) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.Window,
		Type:   m.atoms.xembed,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(xproto.TimeCurrentTime),
			xembedEmbeddedNotify,
			uint32(m.window),
			c.XEmbedVersion,
			0,
		}),
	}
	return m.t.SendEvent(c.Window, xproto.EventMaskNoEvent, ev)
}

// reflow places every client in its slot, left to right in registry order.
func (m *Manager) reflow() error {
	for _, p := range m.clients.Placements(m.layout) {
		if err := m.t.ConfigureWindow(p.Window, xproto.ConfigWindowX|xproto.ConfigWindowY, []uint32{p.X, p.Y}); err != nil {
			return fmt.Errorf("reflow %d: %w", p.Window, err)
		}
	}
	return nil
}
