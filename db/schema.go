package db

// Schema is the table OrderStore reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL,
	status     TEXT NOT NULL,
	amount     NUMERIC NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id);
`
