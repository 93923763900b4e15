package tray

import (
	"github.com/BurntSushi/xgb/xproto"
)

// Layout holds the fixed geometry used to place docked icons.
type Layout struct {
	IconSize uint32
	LeftPad  uint32
	ClientY  uint32
}

// DefaultLayout matches the tray's built-in icon geometry.
var DefaultLayout = Layout{IconSize: 32, LeftPad: 10, ClientY: 10}

// Placement is the computed position of one docked client.
type Placement struct {
	Window xproto.Window
	X      uint32
	Y      uint32
}

// Registry is the ordered set of docked clients. Order is dock order and
// determines left-to-right placement.
type Registry struct {
	clients []Client
}

// Len returns the number of docked clients.
func (r *Registry) Len() int {
	return len(r.clients)
}

// Index returns the position of win, or -1.
func (r *Registry) Index(win xproto.Window) int {
	for i, c := range r.clients {
		if c.Window == win {
			return i
		}
	}
	return -1
}

// Contains reports whether win is docked.
func (r *Registry) Contains(win xproto.Window) bool {
	return r.Index(win) >= 0
}

// Add appends c. A window already present is rejected with ErrAlreadyDocked.
func (r *Registry) Add(c Client) error {
	if r.Contains(c.Window) {
		return ErrAlreadyDocked
	}
	r.clients = append(r.clients, c)
	return nil
}

// Remove drops win and returns the removed entry.
func (r *Registry) Remove(win xproto.Window) (Client, bool) {
	idx := r.Index(win)
	if idx < 0 {
		return Client{}, false
	}
	c := r.clients[idx]
	r.clients = append(r.clients[:idx], r.clients[idx+1:]...)
	return c, true
}

// Clear drops every entry.
func (r *Registry) Clear() {
	r.clients = nil
}

// Clients returns a copy of the entries in registry order.
func (r *Registry) Clients() []Client {
	out := make([]Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Placements computes every client's slot from its registry index.
func (r *Registry) Placements(l Layout) []Placement {
	out := make([]Placement, len(r.clients))
	for i, c := range r.clients {
		out[i] = Placement{
			Window: c.Window,
			X:      l.LeftPad + uint32(i)*l.IconSize,
			Y:      l.ClientY,
		}
	}
	return out
}
