package tray

import (
	"github.com/BurntSushi/xgb/xproto"
)

// SetVisible maps or unmaps the tray window.
func (m *Manager) SetVisible(visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkAlive(); err != nil {
		return err
	}
	if visible {
		return m.mapTray()
	}
	return m.unmapTray()
}

// Toggle flips the tray window's visibility based on its current map state.
// A window that is mapped but not viewable (another desktop) is unmapped and
// remapped so the window manager brings it into view.
func (m *Manager) Toggle() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkAlive(); err != nil {
		return err
	}
	state, err := m.t.MapState(m.window)
	if err != nil {
		return err
	}

	switch state {
	case xproto.MapStateViewable:
		return m.unmapTray()
	case xproto.MapStateUnviewable:
		if err := m.unmapTray(); err != nil {
			return err
		}
		return m.mapTray()
	case xproto.MapStateUnmapped:
		return m.mapTray()
	default:
		m.logger.Debug("unexpected map state", "state", state)
		return nil
	}
}

// Destroy destroys the tray window. The event loop observes the resulting
// destroy notification and stops; every later call returns ErrDestroyed.
func (m *Manager) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkAlive(); err != nil {
		return err
	}
	if err := m.t.DestroyWindow(m.window); err != nil {
		return err
	}
	m.closing = true
	return nil
}

func (m *Manager) checkAlive() error {
	if m.state == StateDestroyed || m.closing {
		return ErrDestroyed
	}
	return nil
}

func (m *Manager) mapTray() error {
	if err := m.t.MapWindow(m.window); err != nil {
		return err
	}
	m.visible = true
	return nil
}

func (m *Manager) unmapTray() error {
	if err := m.t.UnmapWindow(m.window); err != nil {
		return err
	}
	m.visible = false
	return nil
}
