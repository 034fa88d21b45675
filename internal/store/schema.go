package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    name        TEXT PRIMARY KEY,
    payload     TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);
`
