package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

const (
	TypeMatchMade          = "match_made"
	TypeGameOver           = "game_over"
	TypePlayerDisconnected = "player_disconnected"
)

// Event is a lifecycle notification published for external observers.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type MatchMadePayload struct {
	SessionID   string   `json:"session_id"`
	PlayerAddrs []string `json:"player_addrs"`
}

type GameOverPayload struct {
	SessionID string `json:"session_id"`
	Winner    int    `json:"winner"`
	Shots     int    `json:"shots"`
}

type PlayerDisconnectedPayload struct {
	SessionID  string `json:"session_id"`
	PlayerAddr string `json:"player_addr"`
}

func NewEvent(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher fans events out on EventsChannel.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, EventsChannel, data).Err()
}

// NewRedisClient connects to addr and pings it once.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	slog.Info("connected to redis", "addr", addr)
	return client, nil
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
