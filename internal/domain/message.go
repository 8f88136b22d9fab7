package domain

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type MessageStatus string

const (
	MessageInfo    MessageStatus = "info"
	MessageSuccess MessageStatus = "success"
	MessageError   MessageStatus = "error"
)

// Message is one turn in a session's conversation view. Messages are only
// ever appended, never mutated in place.
type Message struct {
	Role        MessageRole
	Content     string
	Tool        Tool
	Model       string
	Attachments []string
	Status      MessageStatus
	VideoURL    string
	ImageURLs   []string
	JobID       JobID
	Timestamp   time.Time
}

func (m Message) clone() Message {
	dup := m
	dup.Attachments = append([]string(nil), m.Attachments...)
	dup.ImageURLs = append([]string(nil), m.ImageURLs...)
	return dup
}
