package journal

// Schema DDL. Statements are idempotent so an existing journal.db is
// reused across runs.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    started_at TEXT NOT NULL
);`

	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    command TEXT NOT NULL,
    args TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error TEXT,
    created_at TEXT NOT NULL,
    PRIMARY KEY (session_id, seq),
    FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);`

	idxEntriesOutcome = `CREATE INDEX IF NOT EXISTS idx_entries_outcome ON entries(outcome);`
)

// schemaDDL lists every statement in dependency order.
var schemaDDL = []string{
	createSessions,
	createEntries,
	idxEntriesOutcome,
}
