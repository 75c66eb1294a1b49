package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT 'Employee',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	amount INTEGER NOT NULL DEFAULT 0,
	vat TEXT NOT NULL DEFAULT '',
	pct INTEGER NOT NULL DEFAULT 0,
	commentary TEXT NOT NULL DEFAULT '',
	comment_admin TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	file_url TEXT NOT NULL DEFAULT '',
	file_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// Setup creates the tables if they do not exist yet.
func Setup(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
