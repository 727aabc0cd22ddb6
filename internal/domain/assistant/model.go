package assistant

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of an assistant conversation.
type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AskRequest is the body of an assistant question.
type AskRequest struct {
	Question  string `json:"question"`
	PatientID int    `json:"patientId"`
}

// EditRequest carries the replacement content for a message edit.
type EditRequest struct {
	Content string `json:"content"`
}
