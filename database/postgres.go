package database

import (
    "fmt"
    "strings"

    _ "github.com/lib/pq"
)

type postgresDialect struct{}

func (postgresDialect) driverName() string { return "postgres" }

func (postgresDialect) schema() []string {
    return []string{
        `CREATE TABLE IF NOT EXISTS link_runs (
            id UUID PRIMARY KEY,
            base_url TEXT NOT NULL,
            started_at TIMESTAMP,
            finished_at TIMESTAMP,
            pages INTEGER DEFAULT 0,
            orphans INTEGER DEFAULT 0
        )`,
        `CREATE TABLE IF NOT EXISTS link_pages (
            run_id UUID NOT NULL REFERENCES link_runs(id) ON DELETE CASCADE,
            url TEXT NOT NULL,
            page_value INTEGER,
            page_depth INTEGER,
            inbound_count INTEGER DEFAULT 0,
            orphan BOOLEAN DEFAULT FALSE,
            PRIMARY KEY (run_id, url)
        )`,
        `CREATE TABLE IF NOT EXISTS link_edges (
            id BIGSERIAL PRIMARY KEY,
            run_id UUID NOT NULL REFERENCES link_runs(id) ON DELETE CASCADE,
            source_url TEXT NOT NULL,
            target_url TEXT NOT NULL,
            label TEXT,
            weight DOUBLE PRECISION,
            context TEXT,
            position INTEGER
        )`,
        `CREATE INDEX IF NOT EXISTS idx_link_pages_orphan ON link_pages(run_id, orphan)`,
        `CREATE INDEX IF NOT EXISTS idx_link_edges_target ON link_edges(run_id, target_url)`,
    }
}

func (postgresDialect) param(n int) string { return fmt.Sprintf("$%d", n) }

// placeholders renders rows groups of $n parameters.
func (d postgresDialect) placeholders(rows, cols int) string {
    groups := make([]string, rows)
    n := 1
    for r := 0; r < rows; r++ {
        params := make([]string, cols)
        for c := 0; c < cols; c++ {
            params[c] = d.param(n)
            n++
        }
        groups[r] = "(" + strings.Join(params, ", ") + ")"
    }
    return strings.Join(groups, ", ")
}
