package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-tcp/internal/config"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

const WsPath = "/battleship"

func (s *Server) newUpgrader() websocket.Upgrader {
	upgrader := websocket.Upgrader{
		HandshakeTimeout: time.Second * 5,

		// one record per frame, with room for the frame header
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
	}

	// nil CheckOrigin rejects cross-origin browsers
	if s.stage != config.StageProd {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return upgrader
}

func (s *Server) wsMux(ctx context.Context, arrivals chan<- arrival) *http.ServeMux {
	upgrader := s.newUpgrader()

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+WsPath, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied with an HTTP error
			slog.Warn("websocket upgrade failed", "remote.addr", r.RemoteAddr, "err", err)
			return
		}
		slog.Info("a new connection established", "transport", "websocket", "remote.addr", conn.RemoteAddr().String())

		enterLobby(ctx, arrivals, arrival{conn: mc.NewWsConn(conn), localAddr: conn.LocalAddr()})
	})
	return mux
}
