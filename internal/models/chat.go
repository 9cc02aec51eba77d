package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry in a conversation transcript. Immutable once
// created.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	IsFromUser bool      `json:"is_from_user"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChatMessage creates a message stamped with the current time.
func NewChatMessage(content string, fromUser bool) ChatMessage {
	return ChatMessage{
		ID:         uuid.New(),
		Content:    content,
		IsFromUser: fromUser,
		Timestamp:  time.Now(),
	}
}

// ChatSession aggregates the messages of one conversation, in insertion
// order. DayType is set at most once: the first non-empty extraction wins and
// is never overwritten.
type ChatSession struct {
	ID       uuid.UUID     `json:"id"`
	Title    string        `json:"title"`
	Date     time.Time     `json:"date"`
	DayType  string        `json:"day_type,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// NewChatSession creates an empty session dated now.
func NewChatSession(title string) *ChatSession {
	return &ChatSession{
		ID:    uuid.New(),
		Title: title,
		Date:  time.Now(),
	}
}

// AddMessage appends a message to the transcript.
func (s *ChatSession) AddMessage(m ChatMessage) {
	s.Messages = append(s.Messages, m)
}

// DisplayTitle is the sidebar title: "<emoji> <dayType>" once a day type is
// known, otherwise the session date.
func (s *ChatSession) DisplayTitle() string {
	if s.DayType != "" {
		return ParseDayType(s.DayType).Emoji() + " " + s.DayType
	}
	return s.Date.Format("Jan 2, 2006")
}
