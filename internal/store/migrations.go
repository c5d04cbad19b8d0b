package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	phone      TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	tax_id     TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL DEFAULT 'parte',
	status     TEXT NOT NULL DEFAULT 'ativo',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notes (
	id          TEXT PRIMARY KEY,
	case_number TEXT,
	contact_id  TEXT,
	content     TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	case_number  TEXT,
	contact_id   TEXT,
	title        TEXT NOT NULL,
	due_date     DATETIME,
	completed    INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dismissed_alerts (
	id           TEXT PRIMARY KEY,
	dismissed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_case_number ON notes(case_number);
CREATE INDEX IF NOT EXISTS idx_notes_contact_id ON notes(contact_id);
CREATE INDEX IF NOT EXISTS idx_tasks_case_number ON tasks(case_number);
CREATE INDEX IF NOT EXISTS idx_tasks_contact_id ON tasks(contact_id);
CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
