package tray

import (
	"context"
	"testing"
	"time"

	"github.com/1broseidon/traydock/internal/control"
	"github.com/BurntSushi/xgb/xproto"
)

// Drives a manager through the control endpoint the way the daemon wires it.
func TestRemoteControl_EndToEnd(t *testing.T) {
	m, f := newTestManager(t)
	f.echoDestroy = true

	server := control.NewServer(m, control.ServerOptions{Logger: testLogger()})
	if err := server.Listen("tcp://127.0.0.1:0"); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer server.Close()
	go server.Serve()

	loop := runAsync(m)
	client := control.NewClient("tcp://"+server.Addr().String(), 5*time.Second)
	ctx := context.Background()

	waitMapState := func(want byte) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for {
			f.mu.Lock()
			got := f.mapState[testTrayID]
			f.mu.Unlock()
			if got == want {
				return
			}
			if time.Now().After(deadline) {
				t.Fatalf("map state = %d, want %d", got, want)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	if err := client.Do(ctx, control.CommandHide); err != nil {
		t.Fatalf("hide: %v", err)
	}
	waitMapState(xproto.MapStateUnmapped)

	if err := client.Do(ctx, control.CommandShow); err != nil {
		t.Fatalf("show: %v", err)
	}
	waitMapState(xproto.MapStateViewable)

	if err := client.Do(ctx, control.CommandQuit); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if err := waitRun(t, loop); err != nil {
		t.Fatalf("Run returned %v, want nil", err)
	}
	if m.State() != StateDestroyed {
		t.Fatalf("expected destroyed state, got %v", m.State())
	}
	if got := f.callsFor("destroy_window"); len(got) != 1 || got[0].win != testTrayID {
		t.Fatalf("unexpected destroy calls: %+v", got)
	}
}
