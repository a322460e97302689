package api

import (
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

type readResult struct {
	msg mc.Message
	err error
}

// waitingConn watches a player waiting in the lobby for an opponent. It
// keeps one read pending so a player who leaves is noticed before pairing,
// and hands that read to the session as its first Receive.
type waitingConn struct {
	mc.Conn

	first    chan readResult
	gone     chan struct{}
	consumed bool
}

func watchWaiting(conn mc.Conn) *waitingConn {
	w := &waitingConn{
		Conn:  conn,
		first: make(chan readResult, 1),
		gone:  make(chan struct{}),
	}

	go func() {
		msg, err := conn.Receive()
		if err != nil && !mc.IsRecoverable(err) {
			close(w.gone)
		}
		w.first <- readResult{msg: msg, err: err}
	}()
	return w
}

// Gone is closed once the waiting player has disconnected.
func (w *waitingConn) Gone() <-chan struct{} {
	return w.gone
}

func (w *waitingConn) left() bool {
	select {
	case <-w.gone:
		return true
	default:
		return false
	}
}

// Receive must only be called from one goroutine, as with every mc.Conn.
func (w *waitingConn) Receive() (mc.Message, error) {
	if !w.consumed {
		w.consumed = true
		r := <-w.first
		return r.msg, r.err
	}
	return w.Conn.Receive()
}
