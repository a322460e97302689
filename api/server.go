package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-tcp/db/sqlc"
	"github.com/saeidalz13/battleship-tcp/events"
	"github.com/saeidalz13/battleship-tcp/internal/config"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

// arrival is a connection waiting in the lobby. localAddr is the server side
// of the socket and identifies this server in analytics.
type arrival struct {
	conn      mc.Conn
	localAddr net.Addr
}

type Server struct {
	port        int
	wsPort      int
	stage       string
	maxSessions int

	listener   net.Listener
	wsListener net.Listener

	dbm       *sqlc.DbManager
	publisher events.Publisher
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) (*Server, error) {
	server := Server{
		port:        config.DefaultPort,
		stage:       config.StageDev,
		maxSessions: config.DefaultMaxSessions,
		publisher:   events.NopPublisher{},
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}
	return &server, nil
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid game port: %d", port)
		}
		s.port = port
		return nil
	}
}

// WithWsPort enables the WebSocket transport; 0 keeps it disabled.
func WithWsPort(port int) Option {
	return func(s *Server) error {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid websocket port: %d", port)
		}
		s.wsPort = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// WithMaxSessions stops accepting players after n games were started.
// 0 means no limit.
func WithMaxSessions(n int) Option {
	return func(s *Server) error {
		if n < 0 {
			return fmt.Errorf("max sessions must not be negative: %d", n)
		}
		s.maxSessions = n
		return nil
	}
}

func WithQuerier(querier sqlc.Querier) Option {
	return func(s *Server) error {
		if querier == nil {
			return errors.New("querier must not be nil")
		}
		s.dbm = sqlc.NewDbManager(querier)
		return nil
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Server) error {
		if publisher == nil {
			return errors.New("publisher must not be nil")
		}
		s.publisher = publisher
		return nil
	}
}

// WithListener serves the game protocol on ln instead of listening on the port.
func WithListener(ln net.Listener) Option {
	return func(s *Server) error {
		s.listener = ln
		return nil
	}
}

// WithWsListener serves the WebSocket transport on ln instead of the ws port.
func WithWsListener(ln net.Listener) Option {
	return func(s *Server) error {
		s.wsListener = ln
		return nil
	}
}

func (s *Server) listen() (net.Listener, net.Listener, error) {
	ln := s.listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", fmt.Sprintf(":%d", s.port))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to listen on game port %d: %w", s.port, err)
		}
	}

	wsLn := s.wsListener
	if wsLn == nil && s.wsPort != 0 {
		var err error
		wsLn, err = net.Listen("tcp", fmt.Sprintf(":%d", s.wsPort))
		if err != nil {
			ln.Close()
			return nil, nil, fmt.Errorf("failed to listen on websocket port %d: %w", s.wsPort, err)
		}
	}
	return ln, wsLn, nil
}

// ListenAndServe pairs arriving players in arrival order and runs one
// GameSession per pair. Once the session limit is reached the listeners are
// closed and it returns after every running session has finished.
// Cancelling ctx stops accepting and ends running sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, wsLn, err := s.listen()
	if err != nil {
		return err
	}

	acceptCtx, stopAccepting := context.WithCancelCause(ctx)
	defer stopAccepting(nil)

	arrivals := make(chan arrival)

	slog.Info("listening for players", "transport", "tcp", "addr", ln.Addr().String(), "stage", s.stage)
	context.AfterFunc(acceptCtx, func() { ln.Close() })
	go s.acceptLoop(acceptCtx, stopAccepting, ln, arrivals)

	if wsLn != nil {
		httpServer := &http.Server{Handler: s.wsMux(acceptCtx, arrivals)}
		slog.Info("listening for players", "transport", "websocket", "addr", wsLn.Addr().String())
		context.AfterFunc(acceptCtx, func() { httpServer.Close() })

		go func() {
			if err := httpServer.Serve(wsLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				stopAccepting(fmt.Errorf("websocket server failed: %w", err))
			}
		}()
	}

	var (
		wg       sync.WaitGroup
		waiting  *arrival
		watched  *waitingConn
		departed <-chan struct{}
		sessions int
	)

	leave := func() {
		slog.Info("waiting player left the lobby", "remote.addr", waiting.conn.RemoteAddr())
		waiting.conn.Close()
		waiting, watched, departed = nil, nil, nil
	}

lobbyLoop:
	for s.maxSessions == 0 || sessions < s.maxSessions {
		select {
		case <-acceptCtx.Done():
			break lobbyLoop

		case <-departed:
			leave()

		case a := <-arrivals:
			if watched != nil && watched.left() {
				leave()
			}

			slot := HostSlot
			if waiting != nil {
				slot = JoinSlot
			}
			if err := a.conn.Send(mc.Info{Text: fmt.Sprintf("Welcome Player %d", slot+1)}); err != nil {
				slog.Warn("player left the lobby", "remote.addr", a.conn.RemoteAddr(), "err", err)
				a.conn.Close()
				continue
			}
			slog.Info("player joined the lobby", "remote.addr", a.conn.RemoteAddr(), "player.slot", slot)

			if waiting == nil {
				watched = watchWaiting(a.conn)
				a.conn = watched
				waiting = &a
				departed = watched.Gone()
				continue
			}

			session := NewGameSession(waiting.conn, a.conn, s.sessionOptions(waiting.localAddr)...)
			waiting, watched, departed = nil, nil, nil
			sessions++

			wg.Add(1)
			go func() {
				defer wg.Done()
				result := session.Run(ctx)
				slog.Info("game session ended",
					"session.id", session.ID,
					"winner", result.Winner,
					"aborted", result.Aborted,
					"shots", result.Shots,
				)
			}()
		}
	}

	stopAccepting(nil)
	if waiting != nil {
		waiting.conn.Close()
	}
	wg.Wait()

	if cause := context.Cause(acceptCtx); !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

func (s *Server) acceptLoop(ctx context.Context, fail context.CancelCauseFunc, ln net.Listener, arrivals chan<- arrival) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			fail(fmt.Errorf("failed to accept connection: %w", err))
			return
		}

		slog.Info("a new connection established", "transport", "tcp", "remote.addr", conn.RemoteAddr().String())
		a := arrival{conn: mc.NewStreamConn(conn), localAddr: conn.LocalAddr()}
		if !enterLobby(ctx, arrivals, a) {
			return
		}
	}
}

// enterLobby hands a over to the lobby, or closes it if the lobby is gone.
func enterLobby(ctx context.Context, arrivals chan<- arrival, a arrival) bool {
	select {
	case arrivals <- a:
		return true
	case <-ctx.Done():
		a.conn.Close()
		return false
	}
}

func (s *Server) sessionOptions(localAddr net.Addr) []SessionOption {
	opts := []SessionOption{WithEventPublisher(s.publisher)}
	if !s.dbm.AnalyticsEnabled() {
		return opts
	}

	serverIpNet, err := getServerIpNet(localAddr)
	if err != nil {
		slog.Warn("analytics disabled for session", "err", err)
		return opts
	}
	return append(opts, WithAnalytics(s.dbm.Analytics, pqtype.Inet{IPNet: serverIpNet, Valid: true}))
}

func getServerIpNet(localAddr net.Addr) (net.IPNet, error) {
	if localAddr == nil {
		return net.IPNet{}, errors.New("missing local address")
	}
	host, _, err := net.SplitHostPort(localAddr.String())
	if err != nil {
		return net.IPNet{}, fmt.Errorf("failed to extract host from local addr: %w", err)
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return net.IPNet{}, fmt.Errorf("local addr host is not an IP: %s", host)
	}
	if ip4 := parsedIP.To4(); ip4 != nil {
		return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return net.IPNet{IP: parsedIP, Mask: net.CIDRMask(128, 128)}, nil
}
