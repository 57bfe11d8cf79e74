// Package journal records the commands issued to a backpack session in a
// SQLite database. It keeps a history of what was asked and how each
// command ended; inventories themselves are never stored.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// FileName is the database file created inside the data directory.
const FileName = "journal.db"

// timeFormat is fixed-width so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Journal is an open command journal. Methods are safe for concurrent use.
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	closed bool
	now    func() time.Time
}

// Open creates dataDir if needed and opens (or creates) the journal
// database inside it.
func Open(dataDir string) (*Journal, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Journal{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file location.
func (j *Journal) Path() string {
	return j.path
}

// Begin registers a new session and returns its UUID v7. source names
// what drives the session, e.g. "shell" or a script path.
func (j *Journal) Begin(source string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return "", types.ErrJournalClosed
	}

	id := newSessionID()
	_, err := j.db.Exec(`INSERT INTO sessions (session_id, source, started_at) VALUES (?, ?, ?)`,
		id, source, j.now().UTC().Format(timeFormat))
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// Record appends e to its session, assigning the next sequence number and
// the creation time. Returns ErrSessionNotFound for an unknown session.
func (j *Journal) Record(e types.JournalEntry) (types.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return e, types.ErrJournalClosed
	}
	if e.SessionID == "" {
		return e, types.ErrInvalidSession
	}

	tx, err := j.db.Begin()
	if err != nil {
		return e, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM sessions WHERE session_id = ?`, e.SessionID).Scan(&exists); err != nil {
		return e, fmt.Errorf("lookup session: %w", err)
	}
	if exists == 0 {
		return e, types.ErrSessionNotFound
	}

	var last sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(seq) FROM entries WHERE session_id = ?`, e.SessionID).Scan(&last); err != nil {
		return e, fmt.Errorf("next sequence: %w", err)
	}
	e.Seq = int(last.Int64) + 1
	e.CreatedAt = j.now().UTC()
	if e.Args == nil {
		e.Args = []string{}
	}

	args, err := json.Marshal(e.Args)
	if err != nil {
		return e, fmt.Errorf("marshal args: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO entries (session_id, seq, command, args, outcome, error, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Seq, e.Command, string(args), e.Outcome, nullString(e.Error), e.CreatedAt.Format(timeFormat))
	if err != nil {
		return e, fmt.Errorf("insert entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return e, fmt.Errorf("commit entry: %w", err)
	}
	return e, nil
}

// Sessions returns every session, oldest first, with its command count.
func (j *Journal) Sessions() ([]types.Session, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, types.ErrJournalClosed
	}

	rows, err := j.db.Query(`SELECT s.session_id, s.source, s.started_at, COUNT(e.seq)
FROM sessions s LEFT JOIN entries e ON e.session_id = s.session_id
GROUP BY s.session_id ORDER BY s.started_at, s.session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []types.Session{}
	for rows.Next() {
		var s types.Session
		var started string
		if err := rows.Scan(&s.SessionID, &s.Source, &started, &s.Commands); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.StartedAt, err = time.Parse(timeFormat, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Entries returns the commands of one session in sequence order.
// Returns ErrSessionNotFound if the session does not exist.
func (j *Journal) Entries(sessionID string) ([]types.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, types.ErrJournalClosed
	}
	return j.entriesLocked(sessionID)
}

func (j *Journal) entriesLocked(sessionID string) ([]types.JournalEntry, error) {
	if sessionID == "" {
		return nil, types.ErrInvalidSession
	}

	var exists int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE session_id = ?`, sessionID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if exists == 0 {
		return nil, types.ErrSessionNotFound
	}

	rows, err := j.db.Query(`SELECT seq, command, args, outcome, error, created_at
FROM entries WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []types.JournalEntry{}
	for rows.Next() {
		e := types.JournalEntry{SessionID: sessionID}
		var args, created string
		var errText sql.NullString
		if err := rows.Scan(&e.Seq, &e.Command, &args, &e.Outcome, &errText, &created); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(args), &e.Args); err != nil {
			return nil, fmt.Errorf("decode args: %w", err)
		}
		e.Error = errText.String
		if e.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportJSONL writes one session's entries to path, one JSON object per
// line, replacing the file atomically. Returns the number of entries
// written.
func (j *Journal) ExportJSONL(path, sessionID string) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return 0, types.ErrJournalClosed
	}

	entries, err := j.entriesLocked(sessionID)
	if err != nil {
		return 0, err
	}
	records := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return 0, fmt.Errorf("marshal entry %d: %w", e.Seq, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Close releases the database. Idempotent; later calls on the journal
// return ErrJournalClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// newSessionID generates a UUID v7, falling back to v4.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
