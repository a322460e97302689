package api

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("api")
	meter  = otel.Meter("api")

	// Instruments resolve against the global provider, so they may be created
	// before telemetry is initialized.
	sessionsStarted, _    = meter.Int64Counter("battleship.sessions.started", metric.WithDescription("Game sessions started"))
	sessionsFinished, _   = meter.Int64Counter("battleship.sessions.finished", metric.WithDescription("Game sessions that ended with a winner"))
	sessionsAborted, _    = meter.Int64Counter("battleship.sessions.aborted", metric.WithDescription("Game sessions ended by a disconnect or shutdown"))
	shotsFired, _         = meter.Int64Counter("battleship.shots", metric.WithDescription("Shots resolved by game sessions"))
	placementsRejected, _ = meter.Int64Counter("battleship.placements.rejected", metric.WithDescription("Placement requests answered with success=false"))
)
