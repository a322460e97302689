package connection

import (
	"errors"
	"fmt"
	"io"
	"net"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
)

const (
	// The connection is gone; the session must end.
	ConnLoopBreak uint8 = iota
	// The record was unusable but the stream is still aligned;
	// the reader may keep waiting.
	ConnLoopContinue
	ConnInvalidMsgType
)

type ConnErr struct {
	code uint8
	desc string
	err  error
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Wrap(err error) ConnErr {
	c.err = err
	return c
}

func (c ConnErr) Error() string {
	if c.err != nil {
		return fmt.Sprintf("Connection error - Code: %d\tdesc: %s\terr: %v", c.code, c.desc, c.err)
	}
	return fmt.Sprintf("Connection error - Code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Unwrap() error {
	return c.err
}

func (c ConnErr) Code() uint8 {
	return c.code
}

// IsRecoverable reports whether a receive error can be skipped
// without losing the connection.
func IsRecoverable(err error) bool {
	var connErr ConnErr
	if errors.As(err, &connErr) {
		return connErr.Code() == ConnLoopContinue
	}
	return false
}

// classifyReadErr maps a transport read or decode failure to a ConnErr.
func classifyReadErr(remoteAddr string, err error) ConnErr {
	if errors.Is(err, cerr.ErrUnknownMessageKind) {
		return NewConnErr(ConnLoopContinue).AddDesc("skipping record from " + remoteAddr).Wrap(err)
	}

	// EOF, short records, resets and closed sockets all mean the
	// peer is gone as far as the game is concerned.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return NewConnErr(ConnLoopBreak).AddDesc("read loop ended").Wrap(cerr.ErrPeerDisconnectedFrom(remoteAddr, err))
	}
	return NewConnErr(ConnLoopBreak).AddDesc("read failed").Wrap(cerr.ErrPeerDisconnectedFrom(remoteAddr, err))
}

func classifyWriteErr(remoteAddr string, err error) ConnErr {
	return NewConnErr(ConnLoopBreak).AddDesc("write failed").Wrap(cerr.ErrPeerDisconnectedFrom(remoteAddr, err))
}
