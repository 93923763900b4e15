package control

import (
	"context"
	"errors"
	"testing"
	"time"
)

// replySocket answers every request with a fixed reply.
type replySocket struct {
	reply string
	sent  []string
	block bool
}

func (r *replySocket) Send(frame []byte) error {
	r.sent = append(r.sent, string(frame))
	return nil
}

func (r *replySocket) Recv() ([]byte, error) {
	if r.block {
		select {}
	}
	return []byte(r.reply), nil
}

func (r *replySocket) Close() error { return nil }

func testClient(sock socket, dialErr error) *Client {
	c := NewClient("tcp://127.0.0.1:5555", 200*time.Millisecond)
	c.dial = func(context.Context, string) (socket, error) {
		if dialErr != nil {
			return nil, dialErr
		}
		return sock, nil
	}
	return c
}

func TestClient_SendReturnsReply(t *testing.T) {
	sock := &replySocket{reply: ReplyOK}
	c := testClient(sock, nil)

	reply, err := c.Send(context.Background(), CommandToggle)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != ReplyOK {
		t.Fatalf("reply = %q", reply)
	}
	if len(sock.sent) != 1 || sock.sent[0] != "toggle" {
		t.Fatalf("sent = %v", sock.sent)
	}
}

func TestClient_DoRejectsErrReply(t *testing.T) {
	c := testClient(&replySocket{reply: ReplyErr}, nil)
	if err := c.Do(context.Background(), CommandShow); err == nil {
		t.Fatalf("expected error for err reply")
	}
}

func TestClient_DialErrorIsControlError(t *testing.T) {
	refused := errors.New("connection refused")
	c := testClient(nil, refused)

	_, err := c.Send(context.Background(), CommandQuit)
	var cerr *Error
	if !errors.As(err, &cerr) || !errors.Is(err, refused) {
		t.Fatalf("expected wrapped dial error, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	c := testClient(&replySocket{block: true}, nil)

	start := time.Now()
	_, err := c.Send(context.Background(), CommandHide)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not honoured")
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	if c := NewClient("tcp://127.0.0.1:5555", 0); c.timeout != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", c.timeout, DefaultTimeout)
	}
}

func TestParseCommand(t *testing.T) {
	for _, c := range Commands {
		got, ok := ParseCommand(string(c))
		if !ok || got != c {
			t.Fatalf("ParseCommand(%q) = %q, %v", c, got, ok)
		}
	}
	if _, ok := ParseCommand("restart"); ok {
		t.Fatalf("unexpected command accepted")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "recv", Err: errors.New("eof")}
	if err.Error() != "control recv: eof" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
