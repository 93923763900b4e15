package control

import "github.com/go-zeromq/zmq4"

// socket is the single-frame request/reply surface the server and client
// need from a ZeroMQ socket.
type socket interface {
	Recv() ([]byte, error)
	Send(frame []byte) error
	Close() error
}

type zmqSocket struct {
	sock zmq4.Socket
}

func (z zmqSocket) Recv() ([]byte, error) {
	msg, err := z.sock.Recv()
	if err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

func (z zmqSocket) Send(frame []byte) error {
	return z.sock.Send(zmq4.NewMsg(frame))
}

func (z zmqSocket) Close() error {
	return z.sock.Close()
}
