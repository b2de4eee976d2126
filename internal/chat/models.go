package chat

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"

	defaultTitle = "New Chat"
)

type Chat struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id" validate:"required"`
	Sender    string    `json:"sender" validate:"required,oneof=user bot"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Line is the compact message shape the chat window renders.
type Line struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Summary is a chat as listed in a user's history.
type Summary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type NewChatRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Title  string `json:"title"`
}

type ReplyRequest struct {
	ChatID  int64  `json:"chat_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}
