package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/saeidalz13/battleship-tcp/db/sqlc"
	"github.com/saeidalz13/battleship-tcp/events"
	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
	mb "github.com/saeidalz13/battleship-tcp/models/battleship"
	mc "github.com/saeidalz13/battleship-tcp/models/connection"
)

type Phase uint8

const (
	PhasePlacement Phase = iota
	PhaseShooting
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseShooting:
		return "shooting"
	default:
		return "game_over"
	}
}

const (
	HostSlot = 0
	JoinSlot = 1

	// NoWinner is reported when a session ends by disconnect or shutdown.
	NoWinner = -1

	playersPerSession = 2
)

const (
	gameStartingText = "All ships placed. Game starting!"
	turnNoticeText   = "Your turn. Fire at the opponent's board."
	wonText          = "You win! Every enemy ship has been sunk."
	lostText         = "You lose. Your whole fleet has been sunk."
)

type Player struct {
	slot  int
	conn  mc.Conn
	board *mb.Board
}

func newPlayer(slot int, conn mc.Conn) *Player {
	return &Player{slot: slot, conn: conn, board: mb.NewBoard()}
}

func (p *Player) Slot() int {
	return p.slot
}

func (p *Player) Board() *mb.Board {
	return p.board
}

type Result struct {
	Phase Phase

	// Winner is the winning slot, or NoWinner.
	Winner  int
	Aborted bool
	Shots   int
}

// GameSession drives one game between two connections. Run is strictly
// sequential: it waits on exactly one player at a time and is the only
// writer of both boards.
type GameSession struct {
	ID string

	host   *Player
	join   *Player
	active *Player

	phase      Phase
	readyCount int
	shots      int

	winner       *Player
	disconnected *Player
	aborted      bool

	analytics   *sqlc.AnalyticsManager
	serverIpNet pqtype.Inet
	publisher   events.Publisher
	log         *slog.Logger
}

type SessionOption func(*GameSession)

func WithSessionID(id string) SessionOption {
	return func(g *GameSession) {
		g.ID = id
	}
}

// WithAnalytics records created, finished and aborted games for serverIpNet.
func WithAnalytics(analytics *sqlc.AnalyticsManager, serverIpNet pqtype.Inet) SessionOption {
	return func(g *GameSession) {
		g.analytics = analytics
		g.serverIpNet = serverIpNet
	}
}

func WithEventPublisher(publisher events.Publisher) SessionOption {
	return func(g *GameSession) {
		if publisher != nil {
			g.publisher = publisher
		}
	}
}

// NewGameSession pairs host (slot 0, first arrival) with join (slot 1).
func NewGameSession(host, join mc.Conn, opts ...SessionOption) *GameSession {
	g := &GameSession{
		ID:        uuid.NewString(),
		host:      newPlayer(HostSlot, host),
		join:      newPlayer(JoinSlot, join),
		phase:     PhasePlacement,
		publisher: events.NopPublisher{},
	}
	g.active = g.host

	for _, opt := range opts {
		opt(g)
	}
	g.log = slog.With("session.id", g.ID)
	return g
}

func (g *GameSession) Host() *Player {
	return g.host
}

func (g *GameSession) Join() *Player {
	return g.join
}

func (g *GameSession) Phase() Phase {
	return g.phase
}

func (g *GameSession) opponentOf(p *Player) *Player {
	if p == g.host {
		return g.join
	}
	return g.host
}

// Run plays the session to completion and closes both connections.
// Cancelling ctx closes the connections, which unblocks a pending receive
// and ends the game without a winner.
func (g *GameSession) Run(ctx context.Context) Result {
	ctx, span := tracer.Start(ctx, "api.GameSession.Run", trace.WithAttributes(
		attribute.String("session.id", g.ID),
	))
	defer span.End()

	stop := context.AfterFunc(ctx, g.closeConns)
	defer stop()

	g.onStart(ctx)

sessionLoop:
	for {
		if err := ctx.Err(); err != nil && g.phase != PhaseGameOver {
			g.abort(nil, err)
		}

		switch g.phase {
		case PhasePlacement:
			g.placementStep(ctx)
		case PhaseShooting:
			g.shootingStep(ctx)
		case PhaseGameOver:
			break sessionLoop
		}
	}

	g.closeConns()

	result := g.result()
	span.SetAttributes(
		attribute.Int("session.winner", result.Winner),
		attribute.Bool("session.aborted", result.Aborted),
		attribute.Int("session.shots", result.Shots),
	)
	if result.Aborted {
		span.SetStatus(codes.Error, "session ended without a winner")
	}
	g.onEnd(context.WithoutCancel(ctx), result)
	return result
}

func (g *GameSession) placementStep(ctx context.Context) {
	p := g.active

	if p.board.AllPlaced() {
		g.readyCount++
		if g.readyCount == playersPerSession {
			g.phase = PhaseShooting
			g.active = g.host
			g.log.Info("all ships placed, shooting starts")
			g.broadcast(ctx, mc.Info{Text: gameStartingText})
			return
		}
		g.active = g.opponentOf(p)
		return
	}

	kind, _ := p.board.NextUnplaced()
	prompt := mc.PlaceShipPrompt{
		Ship: kind,
		Text: fmt.Sprintf("Place your %s (size %d)", kind, kind.Size()),
	}
	if !g.send(ctx, p, prompt) {
		return
	}

	req, ok := receive[mc.PlacementRequest](ctx, g, p)
	if !ok {
		return
	}
	g.handlePlacement(ctx, p, req)
}

func (g *GameSession) handlePlacement(ctx context.Context, p *Player, req mc.PlacementRequest) {
	resp := mc.PlacementResponse{
		Ship:        req.Ship,
		Row:         req.Row,
		Col:         req.Col,
		Orientation: req.Orientation,
	}
	at := mb.NewCoordinates(req.Row, req.Col)

	err := p.board.Place(mb.NewShip(req.Ship, req.Row, req.Col, req.Orientation))
	if err != nil {
		placementsRejected.Add(ctx, 1)
		g.log.Info("placement rejected", "player.slot", p.slot, "err", err)

		switch {
		case errors.Is(err, cerr.ErrUnknownShipKind):
			resp.Text = "Unknown ship kind. Try again."
		case errors.Is(err, cerr.ErrShipAlreadyPlaced):
			resp.Text = fmt.Sprintf("%s is already placed. Try again.", req.Ship)
		default:
			resp.Text = fmt.Sprintf("%s does not fit at %s %s. Try again.", req.Ship, at, req.Orientation)
		}
		g.send(ctx, p, resp)
		return
	}

	resp.Success = true
	resp.Text = fmt.Sprintf("%s placed at %s %s.", req.Ship, at, req.Orientation)
	g.send(ctx, p, resp)
}

func (g *GameSession) shootingStep(ctx context.Context) {
	shooter := g.active
	target := g.opponentOf(shooter)

	if !g.send(ctx, shooter, mc.TurnNotice{Text: turnNoticeText}) {
		return
	}

	req, ok := receive[mc.ShotRequest](ctx, g, shooter)
	if !ok {
		return
	}

	result := target.board.TakeShot(req.Row, req.Col)
	outcome := mc.OutcomeOf(result)
	g.shots++
	shotsFired.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.String())))

	at := mb.NewCoordinates(req.Row, req.Col)
	shooterResult := mc.ShotResult{
		Row:     req.Row,
		Col:     req.Col,
		Outcome: outcome,
		Board:   mc.BoardOpponent,
		Text:    shooterShotText(outcome, at, result.Kind),
	}
	targetResult := mc.ShotResult{
		Row:     req.Row,
		Col:     req.Col,
		Outcome: outcome,
		Board:   mc.BoardOwn,
		Text:    targetShotText(outcome, at, result.Kind),
	}
	if result.Hit {
		shooterResult.Ship = result.Kind
		targetResult.Ship = result.Kind
	}

	if !g.send(ctx, shooter, shooterResult) || !g.send(ctx, target, targetResult) {
		return
	}

	if target.board.IsDefeated() {
		g.winner = shooter
		g.phase = PhaseGameOver
		g.log.Info("game won", "player.slot", shooter.slot, "shots", g.shots)

		g.notify(shooter, mc.GameOver{Won: true, Text: wonText})
		g.notify(target, mc.GameOver{Won: false, Text: lostText})
		return
	}
	g.active = target
}

func shooterShotText(outcome mc.Outcome, at mb.Coordinates, kind mb.ShipKind) string {
	switch outcome {
	case mc.OutcomeSunk:
		return fmt.Sprintf("Hit at %s. You sank the enemy %s!", at, kind)
	case mc.OutcomeHit:
		return fmt.Sprintf("Hit at %s!", at)
	default:
		return fmt.Sprintf("Miss at %s.", at)
	}
}

func targetShotText(outcome mc.Outcome, at mb.Coordinates, kind mb.ShipKind) string {
	switch outcome {
	case mc.OutcomeSunk:
		return fmt.Sprintf("Opponent sank your %s at %s.", kind, at)
	case mc.OutcomeHit:
		return fmt.Sprintf("Opponent hit your %s at %s.", kind, at)
	default:
		return fmt.Sprintf("Opponent missed at %s.", at)
	}
}

// receive blocks until p sends a message of type T. Messages of any other
// type are logged and dropped without a new prompt.
func receive[T mc.Message](ctx context.Context, g *GameSession, p *Player) (T, bool) {
	var zero T
	for {
		msg, err := p.conn.Receive()
		if err != nil {
			if mc.IsRecoverable(err) {
				g.log.Warn("skipping unreadable message", "player.slot", p.slot, "err", err)
				continue
			}
			g.fail(ctx, p, err)
			return zero, false
		}

		if want, ok := msg.(T); ok {
			return want, true
		}
		g.log.Warn("unexpected message ignored",
			"player.slot", p.slot,
			"phase", g.phase.String(),
			"kind", msg.Kind().String(),
		)
	}
}

// send reports false when p is gone, in which case the game is over.
func (g *GameSession) send(ctx context.Context, p *Player, msg mc.Message) bool {
	if err := p.conn.Send(msg); err != nil {
		g.fail(ctx, p, err)
		return false
	}
	return true
}

func (g *GameSession) broadcast(ctx context.Context, msg mc.Message) {
	if g.send(ctx, g.host, msg) {
		g.send(ctx, g.join, msg)
	}
}

// fail aborts after a transport error on p. Once ctx is done the
// connections were closed by the server, so p is not blamed.
func (g *GameSession) fail(ctx context.Context, p *Player, err error) {
	if ctx.Err() != nil {
		g.abort(nil, context.Cause(ctx))
		return
	}
	g.abort(p, err)
}

// notify is for the final messages of a decided game; a failed write no
// longer changes the outcome.
func (g *GameSession) notify(p *Player, msg mc.Message) {
	if err := p.conn.Send(msg); err != nil {
		g.log.Warn("failed to deliver final message", "player.slot", p.slot, "err", err)
	}
}

// abort ends the game without a winner. Nothing is sent to the player who
// is still connected. p is nil when the server itself stopped the game.
func (g *GameSession) abort(p *Player, err error) {
	g.phase = PhaseGameOver
	g.aborted = true

	if p == nil {
		g.log.Info("session cancelled", "err", err)
		return
	}
	g.disconnected = p
	g.log.Warn("player disconnected, game ends without a winner",
		"player.slot", p.slot,
		"remote.addr", p.conn.RemoteAddr(),
		"err", err,
	)
}

func (g *GameSession) closeConns() {
	for _, p := range [...]*Player{g.host, g.join} {
		if err := p.conn.Close(); err != nil {
			g.log.Debug("failed to close connection", "player.slot", p.slot, "err", err)
		}
	}
}

func (g *GameSession) result() Result {
	result := Result{
		Phase:   g.phase,
		Winner:  NoWinner,
		Aborted: g.aborted,
		Shots:   g.shots,
	}
	if g.winner != nil {
		result.Winner = g.winner.slot
	}
	return result
}

func (g *GameSession) onStart(ctx context.Context) {
	sessionsStarted.Add(ctx, 1)
	g.log.Info("game session started",
		"host.addr", g.host.conn.RemoteAddr(),
		"join.addr", g.join.conn.RemoteAddr(),
	)

	if g.analytics != nil {
		if err := g.analytics.IncrementGamesCreatedCount(ctx, g.serverIpNet); err != nil {
			g.log.Error("failed to record created game", "err", err)
		}
	}
	g.publish(ctx, events.TypeMatchMade, events.MatchMadePayload{
		SessionID:   g.ID,
		PlayerAddrs: []string{g.host.conn.RemoteAddr(), g.join.conn.RemoteAddr()},
	})
}

func (g *GameSession) onEnd(ctx context.Context, result Result) {
	if result.Aborted {
		sessionsAborted.Add(ctx, 1)
		if g.analytics != nil {
			if err := g.analytics.IncrementGamesAbortedCount(ctx, g.serverIpNet); err != nil {
				g.log.Error("failed to record aborted game", "err", err)
			}
		}
		if g.disconnected != nil {
			g.publish(ctx, events.TypePlayerDisconnected, events.PlayerDisconnectedPayload{
				SessionID:  g.ID,
				PlayerAddr: g.disconnected.conn.RemoteAddr(),
			})
		}
		return
	}

	sessionsFinished.Add(ctx, 1)
	if g.analytics != nil {
		if err := g.analytics.IncrementGamesFinishedCount(ctx, g.serverIpNet); err != nil {
			g.log.Error("failed to record finished game", "err", err)
		}
	}
	g.publish(ctx, events.TypeGameOver, events.GameOverPayload{
		SessionID: g.ID,
		Winner:    result.Winner,
		Shots:     result.Shots,
	})
}

func (g *GameSession) publish(ctx context.Context, eventType string, payload any) {
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		g.log.Error("failed to build event", "event", eventType, "err", err)
		return
	}
	if err := g.publisher.Publish(ctx, event); err != nil {
		g.log.Warn("failed to publish event", "event", eventType, "err", err)
	}
}
