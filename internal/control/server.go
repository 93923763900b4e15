package control

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/go-zeromq/zmq4"
)

// Tray is the mutation API the server drives. *tray.Manager satisfies it.
type Tray interface {
	SetVisible(visible bool) error
	Toggle() error
	Destroy() error
}

// ServerOptions configures a Server.
type ServerOptions struct {
	Logger *slog.Logger
}

// Server answers show/hide/toggle/quit requests on a ZeroMQ REP socket.
// It never touches the X connection itself; every action goes through Tray.
type Server struct {
	tray   Tray
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	sock   socket
	addr   net.Addr
	closed bool
}

// NewServer creates a server for tray. Call Listen before Serve.
func NewServer(tray Tray, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		tray:   tray,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Listen binds the REP socket to endpoint, e.g. "tcp://*:5555".
func (s *Server) Listen(endpoint string) error {
	sock := zmq4.NewRep(s.ctx)
	if err := sock.Listen(endpoint); err != nil {
		sock.Close()
		return &Error{Op: "listen " + endpoint, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sock.Close()
		return ErrServerClosed
	}
	s.sock = zmqSocket{sock: sock}
	s.addr = sock.Addr()
	s.logger.Info("control server listening", "endpoint", endpoint, "addr", s.addr)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Serve handles requests until Close is called or an error occurs. The first
// socket or action error ends Serve and is returned; after Close it returns
// ErrServerClosed.
func (s *Server) Serve() error {
	s.mu.Lock()
	sock := s.sock
	s.mu.Unlock()
	if sock == nil {
		return &Error{Op: "serve", Err: fmt.Errorf("not listening")}
	}

	for {
		frame, err := sock.Recv()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			return &Error{Op: "recv", Err: err}
		}
		if err := s.handle(sock, frame); err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			return err
		}
	}
}

func (s *Server) handle(sock socket, frame []byte) error {
	text, ok := decodeFrame(frame)
	if !ok {
		s.logger.Warn("rejecting control request", "error", "invalid utf-8", "bytes", len(frame))
		return s.reply(sock, ReplyErr)
	}

	// The requester is answered before the action runs.
	if err := s.reply(sock, ReplyOK); err != nil {
		return err
	}

	var err error
	switch Command(text) {
	case CommandShow:
		err = s.tray.SetVisible(true)
	case CommandHide:
		err = s.tray.SetVisible(false)
	case CommandToggle:
		err = s.tray.Toggle()
	case CommandQuit:
		err = s.tray.Destroy()
	default:
		s.logger.Debug("ignoring unknown control command", "command", text)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", text, err)
	}
	s.logger.Debug("control command handled", "command", text)
	return nil
}

func (s *Server) reply(sock socket, text string) error {
	if err := sock.Send([]byte(text)); err != nil {
		return &Error{Op: "send", Err: err}
	}
	return nil
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close shuts the socket down and unblocks Serve.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	sock := s.sock
	s.mu.Unlock()

	s.cancel()
	if sock != nil {
		return sock.Close()
	}
	return nil
}
