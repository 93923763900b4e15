package tray

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/traydock/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	testRoot   xproto.Window = 1
	testTrayID xproto.Window = 0x200001
)

type call struct {
	op     string
	win    xproto.Window
	values []uint32
}

type queued struct {
	ev  x11.Event
	err error
}

// fakeTransport records every request and serves events from a channel.
type fakeTransport struct {
	mu       sync.Mutex
	calls    []call
	sent     []xproto.ClientMessageEvent
	atoms    map[string]xproto.Atom
	names    map[xproto.Window]string
	xembed   map[xproto.Window][]uint32
	mapState map[xproto.Window]byte
	keycodes map[string][]xproto.Keycode
	owner    xproto.Window
	fail     map[string]error
	events   chan queued

	// echoDestroy queues a DestroyNotify when a window is destroyed, the
	// way the server reports it back through StructureNotify.
	echoDestroy bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		atoms:    make(map[string]xproto.Atom),
		names:    make(map[xproto.Window]string),
		xembed:   make(map[xproto.Window][]uint32),
		mapState: make(map[xproto.Window]byte),
		keycodes: map[string][]xproto.Keycode{"Escape": {9}, "q": {24}},
		fail:     make(map[string]error),
		events:   make(chan queued, 64),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fakeTransport) record(op string, win xproto.Window, values ...uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, win: win, values: values})
	if err, ok := f.fail[op]; ok {
		return &x11.ProtocolError{Op: op, Err: err}
	}
	return nil
}

func (f *fakeTransport) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

func (f *fakeTransport) callsFor(op string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeTransport) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
	f.sent = nil
}

func (f *fakeTransport) push(ev x11.Event) {
	f.events <- queued{ev: ev}
}

func (f *fakeTransport) DefaultScreen() int { return 0 }

func (f *fakeTransport) Screen(num int) (x11.Screen, bool) {
	if num != 0 {
		return x11.Screen{}, false
	}
	return x11.Screen{Num: 0, Root: testRoot, Visual: 0x21, BlackPixel: 0}, true
}

func (f *fakeTransport) Atom(name string) (xproto.Atom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail["intern_atom"]; ok {
		return 0, &x11.ProtocolError{Op: "intern_atom " + name, Err: err}
	}
	atom, ok := f.atoms[name]
	if !ok {
		atom = xproto.Atom(100 + len(f.atoms))
		f.atoms[name] = atom
	}
	return atom, nil
}

func (f *fakeTransport) atom(name string) xproto.Atom {
	a, _ := f.Atom(name)
	return a
}

func (f *fakeTransport) KeyCodes(keysym string) []xproto.Keycode {
	return f.keycodes[keysym]
}

func (f *fakeTransport) NewWindowID() (xproto.Window, error) {
	return testTrayID, f.record("new_window_id", 0)
}

func (f *fakeTransport) CreateWindow(win, parent xproto.Window, visual xproto.Visualid, x, y int16, width, height uint16, valueMask uint32, values []uint32) error {
	return f.record("create_window", win, append([]uint32{uint32(parent), uint32(width), uint32(height), valueMask}, values...)...)
}

func (f *fakeTransport) MapWindow(win xproto.Window) error {
	if err := f.record("map_window", win); err != nil {
		return err
	}
	f.mu.Lock()
	f.mapState[win] = xproto.MapStateViewable
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) UnmapWindow(win xproto.Window) error {
	if err := f.record("unmap_window", win); err != nil {
		return err
	}
	f.mu.Lock()
	f.mapState[win] = xproto.MapStateUnmapped
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) DestroyWindow(win xproto.Window) error {
	if err := f.record("destroy_window", win); err != nil {
		return err
	}
	if f.echoDestroy {
		f.push(x11.DestroyNotify{Window: win})
	}
	return nil
}

func (f *fakeTransport) ReparentWindow(child, parent xproto.Window, x, y int16) error {
	return f.record("reparent_window", child, uint32(parent), uint32(x), uint32(y))
}

func (f *fakeTransport) ConfigureWindow(win xproto.Window, mask uint16, values []uint32) error {
	return f.record("configure_window", win, append([]uint32{uint32(mask)}, values...)...)
}

func (f *fakeTransport) ChangeWindowAttributes(win xproto.Window, mask uint32, values []uint32) error {
	return f.record("change_window_attributes", win, append([]uint32{mask}, values...)...)
}

func (f *fakeTransport) MapState(win xproto.Window) (byte, error) {
	if err := f.record("map_state", win); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mapState[win], nil
}

func (f *fakeTransport) GetProperty(win xproto.Window, prop, typ xproto.Atom, maxLen uint32) (*xproto.GetPropertyReply, error) {
	if err := f.record("get_property", win, uint32(prop), maxLen); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	words, ok := f.xembed[win]
	if !ok || prop != f.atoms[x11.AtomXEmbedInfo] {
		return &xproto.GetPropertyReply{Format: 0}, nil
	}
	if uint32(len(words)) > maxLen {
		words = words[:maxLen]
	}
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		xgb.Put32(buf[i*4:], w)
	}
	return &xproto.GetPropertyReply{Format: 32, ValueLen: uint32(len(words)), Value: buf}, nil
}

func (f *fakeTransport) SetClass(win xproto.Window, instance, class string) error {
	return f.record("set_class", win)
}

func (f *fakeTransport) SetTitle(win xproto.Window, title string) error {
	return f.record("set_title", win)
}

func (f *fakeTransport) SetWindowType(win xproto.Window, types ...string) error {
	return f.record("set_window_type", win)
}

func (f *fakeTransport) SetProtocols(win xproto.Window, protocols ...string) error {
	return f.record("set_protocols", win)
}

func (f *fakeTransport) WindowName(win xproto.Window) (string, error) {
	if err := f.record("window_name", win); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.names[win]
	if !ok {
		return "", &x11.ProtocolError{Op: "get_property WM_NAME", Err: errors.New("no such property")}
	}
	return name, nil
}

func (f *fakeTransport) SendEvent(dest xproto.Window, mask uint32, ev xproto.ClientMessageEvent) error {
	if err := f.record("send_event", dest, mask); err != nil {
		return err
	}
	f.mu.Lock()
	f.sent = append(f.sent, ev)
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) SelectionOwner(selection xproto.Atom) (xproto.Window, error) {
	return f.owner, f.record("selection_owner", 0, uint32(selection))
}

func (f *fakeTransport) SetSelectionOwner(win xproto.Window, selection xproto.Atom) error {
	return f.record("set_selection_owner", win, uint32(selection))
}

func (f *fakeTransport) ChangeSaveSet(mode byte, win xproto.Window) error {
	return f.record("change_save_set", win, uint32(mode))
}

func (f *fakeTransport) WaitForEvent() (x11.Event, error) {
	q, ok := <-f.events
	if !ok {
		return nil, x11.ErrConnectionClosed
	}
	return q.ev, q.err
}

func (f *fakeTransport) Flush() {
	f.record("flush", 0)
}

var _ Transport = (*fakeTransport)(nil)
