package sqlite

import "database/sql"

// schema sets up the session tables. It runs on startup; the database lives
// in memory, so there is never an older schema to migrate from.
// Friends are removed together with their session via ON DELETE CASCADE.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    selected_id TEXT NOT NULL DEFAULT '',
    add_form_visible INTEGER NOT NULL DEFAULT 0,
    form_name TEXT NOT NULL DEFAULT '',
    form_image TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS friends (
    session_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    image TEXT NOT NULL,
    balance TEXT NOT NULL,
    PRIMARY KEY (session_id, id),
    UNIQUE (session_id, position),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_friends_session_id ON friends(session_id);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
