package database

import (
    "strings"

    _ "modernc.org/sqlite"
)

type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return "sqlite" }

func (sqliteDialect) schema() []string {
    return []string{
        `PRAGMA foreign_keys = ON`,
        `CREATE TABLE IF NOT EXISTS link_runs (
            id TEXT PRIMARY KEY,
            base_url TEXT NOT NULL,
            started_at TIMESTAMP,
            finished_at TIMESTAMP,
            pages INTEGER DEFAULT 0,
            orphans INTEGER DEFAULT 0
        )`,
        `CREATE TABLE IF NOT EXISTS link_pages (
            run_id TEXT NOT NULL REFERENCES link_runs(id) ON DELETE CASCADE,
            url TEXT NOT NULL,
            page_value INTEGER,
            page_depth INTEGER,
            inbound_count INTEGER DEFAULT 0,
            orphan BOOLEAN DEFAULT 0,
            PRIMARY KEY (run_id, url)
        )`,
        `CREATE TABLE IF NOT EXISTS link_edges (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            run_id TEXT NOT NULL REFERENCES link_runs(id) ON DELETE CASCADE,
            source_url TEXT NOT NULL,
            target_url TEXT NOT NULL,
            label TEXT,
            weight REAL,
            context TEXT,
            position INTEGER
        )`,
        `CREATE INDEX IF NOT EXISTS idx_link_pages_orphan ON link_pages(run_id, orphan)`,
        `CREATE INDEX IF NOT EXISTS idx_link_edges_target ON link_edges(run_id, target_url)`,
    }
}

func (sqliteDialect) param(int) string { return "?" }

func (sqliteDialect) placeholders(rows, cols int) string {
    group := "(" + strings.TrimSuffix(strings.Repeat("?, ", cols), ", ") + ")"
    groups := make([]string, rows)
    for i := range groups {
        groups[i] = group
    }
    return strings.Join(groups, ", ")
}
