package control

import (
	"context"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
)

// DefaultTimeout bounds a single request/reply exchange.
const DefaultTimeout = 5 * time.Second

// Client sends one command per request to a running daemon.
type Client struct {
	endpoint string
	timeout  time.Duration
	dial     func(ctx context.Context, endpoint string) (socket, error)
}

// NewClient creates a client for endpoint, e.g. "tcp://127.0.0.1:5555".
// A non-positive timeout selects DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		dial:     dialReq,
	}
}

func dialReq(ctx context.Context, endpoint string) (socket, error) {
	sock := zmq4.NewReq(ctx)
	if err := sock.Dial(endpoint); err != nil {
		sock.Close()
		return nil, err
	}
	return zmqSocket{sock: sock}, nil
}

type result struct {
	reply string
	err   error
}

// Send delivers cmd and returns the daemon's reply frame.
func (c *Client) Send(ctx context.Context, cmd Command) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		reply, err := c.exchange(ctx, cmd)
		done <- result{reply: reply, err: err}
	}()

	select {
	case r := <-done:
		return r.reply, r.err
	case <-ctx.Done():
		return "", &Error{Op: fmt.Sprintf("%s %s", cmd, c.endpoint), Err: ctx.Err()}
	}
}

func (c *Client) exchange(ctx context.Context, cmd Command) (string, error) {
	sock, err := c.dial(ctx, c.endpoint)
	if err != nil {
		return "", &Error{Op: "dial " + c.endpoint, Err: fmt.Errorf("%w (is the daemon running?)", err)}
	}
	defer sock.Close()

	if err := sock.Send([]byte(cmd)); err != nil {
		return "", &Error{Op: "send", Err: err}
	}
	frame, err := sock.Recv()
	if err != nil {
		return "", &Error{Op: "recv", Err: err}
	}
	return string(frame), nil
}

// Do sends cmd and fails unless the daemon acknowledged it.
func (c *Client) Do(ctx context.Context, cmd Command) error {
	reply, err := c.Send(ctx, cmd)
	if err != nil {
		return err
	}
	if reply != ReplyOK {
		return fmt.Errorf("daemon rejected %s: %s", cmd, reply)
	}
	return nil
}
