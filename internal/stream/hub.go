package stream

import (
	"context"
	"strings"
	"sync"

	"backend-roamio/internal/logging"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "chat:"
	channelSuffix  = ":broadcast"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// Hub fans chat messages out to every websocket watching a chat. With a
// Redis client, messages travel through pub/sub so that every instance
// delivers them, including the one that published.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	ChatID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{clients: map[string]map[*Client]struct{}{}}
	if redisClient == nil {
		return h
	}

	ctx := context.Background()
	pubsub := redisClient.PSubscribe(ctx, channelPattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Warn().Err(err).Msg("redis subscribe failed, chat stream is local only")
		_ = pubsub.Close()
		return h
	}
	h.redis = redisClient
	h.pubsub = pubsub
	go h.forward(pubsub.Channel())
	return h
}

func (h *Hub) Register(chatID string) *Client {
	client := &Client{
		ChatID: chatID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[chatID] == nil {
		h.clients[chatID] = map[*Client]struct{}{}
	}
	h.clients[chatID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chatClients, ok := h.clients[client.ChatID]
	if !ok {
		return
	}
	if _, ok := chatClients[client]; !ok {
		return
	}
	delete(chatClients, client)
	if len(chatClients) == 0 {
		delete(h.clients, client.ChatID)
	}
	close(client.Send)
}

// Broadcast delivers payload to every watcher of chatID. Slow clients whose
// buffer is full miss the message.
func (h *Hub) Broadcast(ctx context.Context, chatID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(ctx, redisChannel(chatID), payload).Err()
		if err == nil {
			return
		}
		logging.Error().Err(err).Str("chat_id", chatID).Msg("redis publish failed, delivering locally")
	}
	h.deliver(chatID, payload)
}

// Watchers reports how many local websockets follow chatID.
func (h *Hub) Watchers(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[chatID])
}

func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(chatID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[chatID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) forward(messages <-chan *redis.Message) {
	for msg := range messages {
		chatID := chatIDFromChannel(msg.Channel)
		if chatID == "" {
			continue
		}
		h.deliver(chatID, []byte(msg.Payload))
	}
}

func redisChannel(chatID string) string {
	return channelPrefix + chatID + channelSuffix
}

func chatIDFromChannel(ch string) string {
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
