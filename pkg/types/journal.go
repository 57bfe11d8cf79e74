package types

import (
	"errors"
	"time"
)

// Journal entry outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// JournalEntry records one command issued in a shell or script session.
// Entries describe what was asked and how it ended; they never carry
// enough state to rebuild an inventory.
type JournalEntry struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Seq       int       `json:"seq" yaml:"seq"`
	Command   string    `json:"command" yaml:"command"`
	Args      []string  `json:"args" yaml:"args"`
	Outcome   string    `json:"outcome" yaml:"outcome"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Session summarizes one journaled session.
type Session struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Source    string    `json:"source" yaml:"source"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Commands  int       `json:"commands" yaml:"commands"`
}

// Journal lifecycle errors.
var (
	ErrJournalClosed   = errors.New("journal is closed")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session ID")
)
