package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.Send:
		return string(msg)
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
	return ""
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("12")
	defer hub.Unregister(client)

	other := hub.Register("13")
	defer hub.Unregister(other)

	hub.Broadcast(context.Background(), "12", []byte("hello"))
	if msg := receive(t, client); msg != "hello" {
		t.Fatalf("unexpected message %q", msg)
	}
	select {
	case <-other.Send:
		t.Fatalf("message leaked to another chat")
	default:
	}
}

func TestHubChannelNames(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "chat:abc:broadcast" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if chatIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected chat id")
	}
	for _, bad := range []string{"bad", "chat::broadcast", "tracking:abc:broadcast"} {
		if chatIDFromChannel(bad) != "" {
			t.Fatalf("expected empty chat id for %q", bad)
		}
	}
}

func TestUnregisterClosesOnce(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("7")
	hub.Unregister(client)
	hub.Unregister(client)
	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	if hub.Watchers("7") != 0 {
		t.Fatalf("expected no watchers")
	}
}

func TestHubRedisRoundTrip(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	hub := NewHub(rdb)
	defer hub.Close()
	ws := hub.Register("42")
	defer hub.Unregister(ws)

	hub.Broadcast(context.Background(), "42", []byte("ping"))
	if msg := receive(t, ws); msg != "ping" {
		t.Fatalf("unexpected message %q", msg)
	}

	// a publish from another instance reaches local watchers
	if err := rdb.Publish(context.Background(), "chat:42:broadcast", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if msg := receive(t, ws); msg != "pong" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHubRedisUnavailable(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	s.Close()
	defer rdb.Close()

	hub := NewHub(rdb)
	client := hub.Register("9")
	defer hub.Unregister(client)

	hub.Broadcast(context.Background(), "9", []byte("ping"))
	if msg := receive(t, client); msg != "ping" {
		t.Fatalf("expected local delivery, got %q", msg)
	}
}
