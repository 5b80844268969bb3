package sqlite

// Schema DDL. Items of every kind share one table keyed by (kind, id); the
// full item is kept as a JSON payload and name/quantity are mirrored into
// columns for ad-hoc inspection.
const (
	createItems = `CREATE TABLE IF NOT EXISTS items (
    kind TEXT NOT NULL,
    id INTEGER NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    payload TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (kind, id)
);`

	idxItemsName = `CREATE INDEX IF NOT EXISTS idx_items_name ON items(kind, name);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createItems,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxItemsName,
}
