package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerRespectsEachLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	debugHandler := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	warnHandler := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	log := slog.New(NewMultiHandler(debugHandler, warnHandler)).With("session.id", "abc")
	log.Info("placement accepted")
	log.Warn("unexpected message")

	if got := strings.Count(debugBuf.String(), "session.id=abc"); got != 2 {
		t.Fatalf("expected debug handler records: %d\tgot: %d", 2, got)
	}
	if strings.Contains(warnBuf.String(), "placement accepted") {
		t.Fatal("warn handler must not receive info records")
	}
	if !strings.Contains(warnBuf.String(), "unexpected message") {
		t.Fatal("warn handler did not receive warn record")
	}
}

func TestMultiHandlerEnabled(t *testing.T) {
	h := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Fatal("expected info to be disabled")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("expected error to be enabled")
	}
}
