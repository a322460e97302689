package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventEncodesPayload(t *testing.T) {
	event, err := NewEvent(TypeGameOver, GameOverPayload{SessionID: "s-1", Winner: 1, Shots: 34})
	require.NoError(t, err)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"game_over","payload":{"session_id":"s-1","winner":1,"shots":34}}`, string(data))
}

func TestNewEventRejectsUnencodablePayload(t *testing.T) {
	_, err := NewEvent(TypeMatchMade, make(chan int))
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: TypeMatchMade}))
}

func TestRedisPublisherReportsUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	err := NewRedisPublisher(rdb).Publish(context.Background(), Event{Type: TypePlayerDisconnected})
	assert.Error(t, err)
}
