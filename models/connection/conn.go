package connection

import (
	"net"
	"sync"
)

// Conn is one player's message transport. Receive blocks until a whole
// message arrives or the peer is gone.
type Conn interface {
	Send(msg Message) error
	Receive() (Message, error)
	Close() error
	RemoteAddr() string
}

// StreamConn carries fixed-size records over a byte stream such as TCP.
type StreamConn struct {
	conn       net.Conn
	remoteAddr string
	closeOnce  sync.Once
	closeErr   error
}

var _ Conn = (*StreamConn)(nil)

func NewStreamConn(conn net.Conn) *StreamConn {
	remoteAddr := "unknown"
	if addr := conn.RemoteAddr(); addr != nil {
		remoteAddr = addr.String()
	}
	return &StreamConn{conn: conn, remoteAddr: remoteAddr}
}

func (s *StreamConn) Send(msg Message) error {
	if err := Encode(s.conn, msg); err != nil {
		return classifyWriteErr(s.remoteAddr, err)
	}
	return nil
}

func (s *StreamConn) Receive() (Message, error) {
	msg, err := Decode(s.conn)
	if err != nil {
		return nil, classifyReadErr(s.remoteAddr, err)
	}
	return msg, nil
}

func (s *StreamConn) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *StreamConn) RemoteAddr() string {
	return s.remoteAddr
}
