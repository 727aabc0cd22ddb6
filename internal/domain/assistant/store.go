package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps per-patient conversation history in memory. Histories live for
// the lifetime of the process; nothing is persisted.
type Store struct {
	mu       sync.Mutex
	sessions map[int][]Message
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int][]Message),
		now:      time.Now,
	}
}

// Append records a new turn at the end of a patient's history and returns it.
func (s *Store) Append(patientID int, role, content string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Type:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	s.mu.Lock()
	s.sessions[patientID] = append(s.sessions[patientID], msg)
	s.mu.Unlock()
	return msg
}

// History returns a copy of a patient's conversation in order.
func (s *Store) History(patientID int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.sessions[patientID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Edit replaces the content of one message. The assistant turn immediately
// after it, if any, was produced from the old wording and is removed; every
// other turn, including later user questions, is kept. The edited message
// keeps its timestamp. Returns false when the message does not exist in
// that patient's history.
func (s *Store) Edit(patientID int, messageID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.sessions[patientID]
	for i := range msgs {
		if msgs[i].ID != messageID {
			continue
		}
		msgs[i].Content = content
		if i+1 < len(msgs) && msgs[i+1].Type == RoleAssistant {
			msgs = append(msgs[:i+1], msgs[i+2:]...)
		}
		s.sessions[patientID] = msgs
		return true
	}
	return false
}

// Clear drops a patient's entire conversation.
func (s *Store) Clear(patientID int) {
	s.mu.Lock()
	delete(s.sessions, patientID)
	s.mu.Unlock()
}
