package tray

import (
	"errors"

	"github.com/1broseidon/traydock/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Run processes X events until the tray window is destroyed, then returns
// nil. Errors from individual handlers are logged and do not stop the loop.
// A closed connection is returned as an error.
func (m *Manager) Run() error {
	m.logger.Info("entering tray event loop", "window", m.window)
	for {
		ev, err := m.t.WaitForEvent()
		if err != nil {
			if errors.Is(err, x11.ErrConnectionClosed) {
				return err
			}
			m.logger.Warn("x11 error", "error", err)
			continue
		}

		if err := m.dispatch(ev); err != nil {
			if errors.Is(err, ErrDestroyed) {
				m.logger.Info("tray was closed")
				return nil
			}
			m.logger.Warn("error in event loop", "error", err)
		}
	}
}

func (m *Manager) dispatch(ev x11.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e := ev.(type) {
	case x11.DestroyNotify:
		return m.handleDestroyNotify(e)
	case x11.ClientMessage:
		return m.handleClientMessage(e)
	case x11.KeyPress:
		return m.handleKeyPress(e)
	default:
		return nil
	}
}

func (m *Manager) handleDestroyNotify(ev x11.DestroyNotify) error {
	if ev.Window == m.window {
		m.state = StateDestroyed
		m.closing = true
		m.visible = false
		// The docked windows go back to the root through the save-set.
		m.clients.Clear()
		return ErrDestroyed
	}

	client, ok := m.clients.Remove(ev.Window)
	if !ok {
		return nil
	}
	m.logger.Info("goodbye", "window", client.Window, "name", client.DisplayName())
	return m.reflow()
}

func (m *Manager) handleClientMessage(ev x11.ClientMessage) error {
	if ev.Format != 32 {
		return nil
	}

	if ev.Type == m.atoms.protocols && xproto.Atom(ev.Data[0]) == m.atoms.deleteWindow {
		if err := m.unmapTray(); err != nil {
			return err
		}
		m.t.Flush()
		return nil
	}

	if ev.Type != m.atoms.opcode {
		return nil
	}
	switch ev.Data[1] {
	case opcodeRequestDock:
		return m.dock(xproto.Window(ev.Data[2]))
	default:
		m.logger.Debug("ignoring tray opcode", "opcode", ev.Data[1], "window", ev.Window)
		return nil
	}
}

func (m *Manager) handleKeyPress(ev x11.KeyPress) error {
	if _, ok := m.quitKeys[ev.Detail]; !ok {
		return nil
	}
	return m.unmapTray()
}
