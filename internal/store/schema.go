package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS plan (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    plan_id              TEXT NOT NULL,
    per_period_target    TEXT NOT NULL,
    total_target         TEXT NOT NULL,
    period_count         INTEGER NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS periods (
    idx                  INTEGER PRIMARY KEY,
    saved_amount         TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS evidence (
    period_idx           INTEGER PRIMARY KEY REFERENCES periods(idx) ON DELETE CASCADE,
    name                 TEXT NOT NULL,
    content_ref          TEXT NOT NULL,
    media_type           TEXT NOT NULL,
    size_bytes           INTEGER NOT NULL DEFAULT 0,
    attached_at          TEXT
);

CREATE INDEX IF NOT EXISTS idx_evidence_ref ON evidence(content_ref);
`
