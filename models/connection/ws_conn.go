package connection

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
)

const wsCloseGracePeriod = time.Second

// WsConn carries one record per binary WebSocket frame.
type WsConn struct {
	conn       *websocket.Conn
	remoteAddr string
	writeMu    sync.Mutex
	closeOnce  sync.Once
	closeErr   error
}

var _ Conn = (*WsConn)(nil)

func NewWsConn(conn *websocket.Conn) *WsConn {
	return &WsConn{conn: conn, remoteAddr: conn.RemoteAddr().String()}
}

func (w *WsConn) Send(msg Message) error {
	payload, err := Marshal(msg)
	if err != nil {
		return classifyWriteErr(w.remoteAddr, err)
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if err := w.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		w.logConnErr(err)
		return classifyWriteErr(w.remoteAddr, err)
	}
	return nil
}

func (w *WsConn) Receive() (Message, error) {
	// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
	// Control frames are handled inside ReadMessage.
	messageType, payload, err := w.conn.ReadMessage()
	if err != nil {
		w.logConnErr(err)
		return nil, classifyReadErr(w.remoteAddr, err)
	}

	if messageType != websocket.BinaryMessage {
		w.closeWithCode(websocket.CloseUnsupportedData, "records must be sent as binary frames")
		return nil, NewConnErr(ConnInvalidMsgType).AddDesc("text frame").Wrap(cerr.ErrUnexpectedTextFrame(w.remoteAddr))
	}

	msg, err := Unmarshal(payload)
	if err != nil {
		return nil, classifyReadErr(w.remoteAddr, err)
	}
	return msg, nil
}

func (w *WsConn) Close() error {
	w.closeOnce.Do(func() {
		w.closeWithCode(websocket.CloseNormalClosure, "game over")
		w.closeErr = w.conn.Close()
	})
	return w.closeErr
}

func (w *WsConn) RemoteAddr() string {
	return w.remoteAddr
}

// WriteControl may run concurrently with Send.
func (w *WsConn) closeWithCode(code int, text string) {
	deadline := time.Now().Add(wsCloseGracePeriod)
	_ = w.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}

func (w *WsConn) logConnErr(err error) {
	switch {
	case websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
		slog.Info("websocket closed by peer", "remote.addr", w.remoteAddr, "error", err)

	case websocket.IsCloseError(err, websocket.CloseAbnormalClosure):
		slog.Warn("websocket abnormal closure", "remote.addr", w.remoteAddr, "error", err)

	case websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation):
		slog.Warn("websocket closed for invalid payload", "remote.addr", w.remoteAddr, "error", err)

	default:
		slog.Debug("websocket connection error", "remote.addr", w.remoteAddr, "error", err)
	}
}
