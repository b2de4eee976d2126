package chat

import (
	"context"
	"strconv"
	"strings"

	"backend-roamio/internal/db"
	"backend-roamio/internal/logging"

	"github.com/goccy/go-json"
)

// Broadcaster pushes a payload to everyone watching a chat.
type Broadcaster interface {
	Broadcast(ctx context.Context, chatID string, payload []byte)
}

type Service struct {
	db  db.Querier
	hub Broadcaster
}

// NewService builds the chat service. hub may be nil, in which case sent
// messages are only stored.
func NewService(db db.Querier, hub Broadcaster) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Create(ctx context.Context, userID, title string) (Chat, error) {
	c := Chat{UserID: userID, Title: strings.TrimSpace(title)}
	if c.Title == "" {
		c.Title = defaultTitle
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO chats (user_id, title)
		VALUES ($1,$2)
		RETURNING id, created_at
	`, c.UserID, c.Title)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return Chat{}, err
	}
	return c, nil
}

func (s *Service) SaveMessage(ctx context.Context, m Message) (Message, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO chat_messages (chat_id, sender, content)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, m.ChatID, m.Sender, m.Content)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Messages returns a chat's transcript in the order it was written.
func (s *Service) Messages(ctx context.Context, chatID int64) ([]Line, error) {
	rows, err := s.db.Query(ctx, `
		SELECT sender, content FROM chat_messages
		WHERE chat_id=$1
		ORDER BY id
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.Type, &l.Text); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *Service) History(ctx context.Context, userID string) ([]Summary, error) {
	return s.summaries(ctx, `
		SELECT id, title FROM chats
		WHERE user_id=$1
		ORDER BY id
	`, userID)
}

// Search finds a user's chats whose title contains query, ignoring case.
func (s *Service) Search(ctx context.Context, userID, query string) ([]Summary, error) {
	return s.summaries(ctx, `
		SELECT id, title FROM chats
		WHERE user_id=$1 AND title ILIKE $2
		ORDER BY id
	`, userID, db.Contains(query))
}

// Send stores the user's message and the bot's answer, then pushes both to
// live watchers of the chat.
func (s *Service) Send(ctx context.Context, chatID int64, text string) (string, error) {
	userMsg, err := s.SaveMessage(ctx, Message{ChatID: chatID, Sender: SenderUser, Content: text})
	if err != nil {
		return "", err
	}
	reply := Reply(text)
	botMsg, err := s.SaveMessage(ctx, Message{ChatID: chatID, Sender: SenderBot, Content: reply})
	if err != nil {
		return "", err
	}

	s.publish(ctx, userMsg)
	s.publish(ctx, botMsg)
	return reply, nil
}

func (s *Service) publish(ctx context.Context, m Message) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(m)
	if err != nil {
		logging.Error().Err(err).Int64("chat_id", m.ChatID).Msg("encode chat message")
		return
	}
	s.hub.Broadcast(ctx, formatID(m.ChatID), payload)
}

func (s *Service) summaries(ctx context.Context, sql string, args ...any) ([]Summary, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var c Summary
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
