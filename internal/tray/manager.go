package tray

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/1broseidon/traydock/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// State is the lifecycle state of the tray window.
type State int

const (
	StateRunning State = iota
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const trayEventMask = xproto.EventMaskExposure |
	xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskKeyPress

// Options configures the tray window. Zero values fall back to defaults.
type Options struct {
	// Screen selects the screen whose tray selection is claimed; negative
	// means the connection's default screen.
	Screen   int
	Title    string
	Class    string
	Width    uint16
	Height   uint16
	Layout   Layout
	QuitKeys []string
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Tray on Demand"
	}
	if o.Class == "" {
		o.Class = "TrayOnDemand"
	}
	if o.Width == 0 {
		o.Width = 300
	}
	if o.Height == 0 {
		o.Height = 15
	}
	if o.Layout == (Layout{}) {
		o.Layout = DefaultLayout
	} else if o.Layout.IconSize == 0 {
		o.Layout.IconSize = DefaultLayout.IconSize
	}
	if o.QuitKeys == nil {
		o.QuitKeys = []string{"Escape", "q"}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type atoms struct {
	selection    xproto.Atom
	opcode       xproto.Atom
	manager      xproto.Atom
	xembed       xproto.Atom
	xembedInfo   xproto.Atom
	protocols    xproto.Atom
	deleteWindow xproto.Atom
}

// Manager owns the tray window and the registry of docked clients.
//
// Event dispatch and the visibility API share one mutex, so remote control
// commands never interleave with a docking handshake.
type Manager struct {
	t        Transport
	logger   *slog.Logger
	layout   Layout
	screen   x11.Screen
	window   xproto.Window
	atoms    atoms
	quitKeys map[xproto.Keycode]struct{}

	mu      sync.Mutex
	state   State
	closing bool // destroy requested, notification not yet seen
	visible bool
	clients Registry
}

// New creates the tray window on the requested screen, claims the tray
// selection and announces the manager. It either fully succeeds or returns
// an error; there is no partially initialized manager.
func New(t Transport, opts Options) (*Manager, error) {
	opts = opts.withDefaults()

	num := opts.Screen
	if num < 0 {
		num = t.DefaultScreen()
	}
	screen, ok := t.Screen(num)
	if !ok {
		return nil, fmt.Errorf("screen %d does not exist", num)
	}

	m := &Manager{
		t:        t,
		logger:   opts.Logger,
		layout:   opts.Layout,
		screen:   screen,
		quitKeys: make(map[xproto.Keycode]struct{}),
	}

	if err := m.internAtoms(); err != nil {
		return nil, err
	}
	if err := m.createWindow(opts); err != nil {
		return nil, err
	}
	if err := m.claimSelection(); err != nil {
		return nil, err
	}
	m.resolveQuitKeys(opts.QuitKeys)
	t.Flush()

	m.logger.Info("tray window created",
		"window", m.window,
		"screen", screen.Num,
		"selection", x11.TraySelectionName(screen.Num))
	return m, nil
}

func (m *Manager) internAtoms() error {
	names := []struct {
		dst  *xproto.Atom
		name string
	}{
		{&m.atoms.selection, x11.TraySelectionName(m.screen.Num)},
		{&m.atoms.opcode, x11.AtomTrayOpcode},
		{&m.atoms.manager, x11.AtomManager},
		{&m.atoms.xembed, x11.AtomXEmbed},
		{&m.atoms.xembedInfo, x11.AtomXEmbedInfo},
		{&m.atoms.protocols, x11.AtomWMProtocols},
		{&m.atoms.deleteWindow, x11.AtomWMDeleteWindow},
	}
	for _, n := range names {
		atom, err := m.t.Atom(n.name)
		if err != nil {
			return err
		}
		*n.dst = atom
	}
	return nil
}

func (m *Manager) createWindow(opts Options) error {
	win, err := m.t.NewWindowID()
	if err != nil {
		return err
	}

	err = m.t.CreateWindow(
		win,
		m.screen.Root,
		m.screen.Visual,
		0, 0, opts.Width, opts.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{m.screen.BlackPixel, trayEventMask},
	)
	if err != nil {
		return err
	}
	m.window = win

	if err := m.t.SetClass(win, opts.Class, opts.Class); err != nil {
		return err
	}
	if err := m.t.SetTitle(win, opts.Title); err != nil {
		return err
	}
	// Utility windows are floated by tiling window managers.
	if err := m.t.SetWindowType(win, x11.WindowTypeUtility); err != nil {
		return err
	}
	if err := m.t.SetProtocols(win, x11.AtomWMDeleteWindow); err != nil {
		return err
	}
	if err := m.t.MapWindow(win); err != nil {
		return err
	}
	m.visible = true
	return nil
}

func (m *Manager) claimSelection() error {
	owner, err := m.t.SelectionOwner(m.atoms.selection)
	if err != nil {
		return err
	}
	if owner != xproto.WindowNone {
		m.logger.Warn("taking over tray selection from another host", "owner", owner)
	}

	if err := m.t.SetSelectionOwner(m.window, m.atoms.selection); err != nil {
		return err
	}

	// Tray clients started before us wait for this broadcast.
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: m.screen.Root,
		Type:   m.atoms.manager,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(xproto.TimeCurrentTime),
			uint32(m.atoms.selection),
			uint32(m.window),
			0,
			0,
		}),
	}
	return m.t.SendEvent(m.screen.Root, xproto.EventMaskStructureNotify, ev)
}

func (m *Manager) resolveQuitKeys(keys []string) {
	for _, key := range keys {
		codes := m.t.KeyCodes(key)
		if len(codes) == 0 {
			m.logger.Warn("quit key has no keycode", "key", key)
			continue
		}
		for _, code := range codes {
			m.quitKeys[code] = struct{}{}
		}
	}
}

// Window returns the tray window handle.
func (m *Manager) Window() xproto.Window {
	return m.window
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Visible reports the last visibility the manager requested.
func (m *Manager) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Clients returns a snapshot of the docked clients in placement order.
func (m *Manager) Clients() []Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clients.Clients()
}

func (m *Manager) String() string {
	clients := m.Clients()
	parts := make([]string, len(clients))
	for i, c := range clients {
		parts[i] = c.String()
	}
	return fmt.Sprintf("TrayManager{handle: %d, clients: [%s]}", m.window, strings.Join(parts, " "))
}
