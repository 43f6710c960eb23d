package database

import (
	"database/sql"
	"fmt"
)

// The unique indexes on users are load-bearing: registration relies on them
// as the atomic "insert if absent" primitive, so a duplicate that slips past
// the application-level pre-check still fails with a unique violation.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	last_login    TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);

CREATE TABLE IF NOT EXISTS tasks (
	id                BIGSERIAL PRIMARY KEY,
	owner_username    TEXT NOT NULL,
	category          TEXT NOT NULL,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL,
	status            TEXT NOT NULL,
	time_until_finish TIMESTAMPTZ NOT NULL,
	remind_me         TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS tasks_owner_idx ON tasks (owner_username);

CREATE TABLE IF NOT EXISTS groups (
	id                 BIGSERIAL PRIMARY KEY,
	name               TEXT NOT NULL,
	description        TEXT NOT NULL,
	created_by_user_id BIGINT NOT NULL REFERENCES users (id),
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS group_members (
	group_id BIGINT NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
	user_id  BIGINT NOT NULL,
	PRIMARY KEY (group_id, user_id)
);

CREATE TABLE IF NOT EXISTS group_tasks (
	id                  BIGSERIAL PRIMARY KEY,
	group_id            BIGINT NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
	name                TEXT NOT NULL,
	description         TEXT NOT NULL,
	status              TEXT NOT NULL,
	assigned_to_user_id BIGINT NOT NULL,
	created_by_user_id  BIGINT NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS group_tasks_group_idx ON group_tasks (group_id);
`

// Migrate applies the schema. All statements are idempotent.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
