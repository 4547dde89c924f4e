package database

import (
    "context"
    "database/sql"
    "sort"
    "strings"

    "github.com/pkg/errors"

    "tradematch-seo/graph"
)

// BatchSize is the number of rows written per multi-row INSERT.
const BatchSize = 500

type dialect interface {
    driverName() string
    schema() []string
    param(n int) string
    placeholders(rows, cols int) string
}

// Store persists finalized link graphs.
type Store struct {
    DB      *sql.DB
    dialect dialect
}

// Open connects with driver ("postgres" or "sqlite") and creates the link graph
// tables when missing.
func Open(ctx context.Context, driver, databaseURL string) (*Store, error) {
    var d dialect
    switch strings.ToLower(driver) {
    case "postgres", "postgresql":
        d = postgresDialect{}
    case "sqlite", "sqlite3":
        d = sqliteDialect{}
    default:
        return nil, errors.Errorf("unsupported database driver %q", driver)
    }

    db, err := sql.Open(d.driverName(), databaseURL)
    if err != nil {
        return nil, errors.Wrap(err, "failed to open database")
    }
    if _, ok := d.(sqliteDialect); ok {
        // One connection keeps in-memory databases and pragmas shared.
        db.SetMaxOpenConns(1)
    }

    if err := db.PingContext(ctx); err != nil {
        db.Close()
        return nil, errors.Wrap(err, "failed to ping database")
    }

    s := &Store{DB: db, dialect: d}
    if err := s.createTables(ctx); err != nil {
        db.Close()
        return nil, errors.Wrap(err, "failed to create tables")
    }

    return s, nil
}

func (s *Store) createTables(ctx context.Context) error {
    for _, query := range s.dialect.schema() {
        if _, err := s.DB.ExecContext(ctx, query); err != nil {
            return errors.Wrapf(err, "failed to execute query %s", query)
        }
    }
    return nil
}

// SaveRun writes the run, its pages and every outgoing edge in one
// transaction. The run is finalized first if needed.
func (s *Store) SaveRun(ctx context.Context, run *graph.Run) error {
    artifact := run.Artifact()
    runID := run.ID.String()

    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return errors.Wrap(err, "failed to begin transaction")
    }
    defer tx.Rollback()

    _, err = tx.ExecContext(ctx,
        "INSERT INTO link_runs (id, base_url, started_at, finished_at, pages, orphans) VALUES "+s.dialect.placeholders(1, 6),
        runID, artifact.BaseURL, run.StartedAt, run.FinishedAt, len(artifact.Pages), len(artifact.Orphans),
    )
    if err != nil {
        return errors.Wrap(err, "failed to insert run")
    }

    orphan := make(map[string]bool, len(artifact.Orphans))
    for _, url := range artifact.Orphans {
        orphan[url] = true
    }

    // Every url with an inbound count is a page of the run, including link
    // targets that were never patched themselves.
    pageRows := make([][]any, 0, len(artifact.InboundCounts))
    for _, url := range sortedURLs(artifact.InboundCounts) {
        rec, recorded := artifact.Pages[url]
        var value, depth any
        if recorded {
            value, depth = rec.PageValue, rec.PageDepth
        }
        pageRows = append(pageRows, []any{runID, url, value, depth, artifact.InboundCounts[url], orphan[url]})
    }
    if err := s.insertBatched(ctx, tx, "link_pages",
        []string{"run_id", "url", "page_value", "page_depth", "inbound_count", "orphan"}, pageRows); err != nil {
        return err
    }

    var edgeRows [][]any
    for _, source := range run.URLs() {
        rec := artifact.Pages[source]
        for i, link := range rec.Outgoing {
            edgeRows = append(edgeRows, []any{runID, source, link.URL, link.Label, link.Weight, string(link.Context), i})
        }
    }
    if err := s.insertBatched(ctx, tx, "link_edges",
        []string{"run_id", "source_url", "target_url", "label", "weight", "context", "position"}, edgeRows); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return errors.Wrap(err, "failed to commit link graph")
    }
    return nil
}

// insertBatched writes rows with one prepared multi-row statement per full
// batch and a final statement for the remainder.
func (s *Store) insertBatched(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
    if len(rows) == 0 {
        return nil
    }

    prefix := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES "

    var full *sql.Stmt
    if len(rows) >= BatchSize {
        stmt, err := tx.PrepareContext(ctx, prefix+s.dialect.placeholders(BatchSize, len(columns)))
        if err != nil {
            return errors.Wrapf(err, "failed to prepare %s insert", table)
        }
        defer stmt.Close()
        full = stmt
    }

    for start := 0; start < len(rows); start += BatchSize {
        end := start + BatchSize
        if end > len(rows) {
            end = len(rows)
        }

        args := make([]any, 0, (end-start)*len(columns))
        for _, row := range rows[start:end] {
            args = append(args, row...)
        }

        var err error
        if end-start == BatchSize {
            _, err = full.ExecContext(ctx, args...)
        } else {
            _, err = tx.ExecContext(ctx, prefix+s.dialect.placeholders(end-start, len(columns)), args...)
        }
        if err != nil {
            return errors.Wrapf(err, "failed to insert %s rows %d-%d", table, start, end)
        }
    }

    return nil
}

// RunSummary is what Summary reads back for one stored run.
type RunSummary struct {
    BaseURL string
    Pages   int
    Edges   int
    Orphans []string
}

// Summary loads the stored totals and orphan list of runID.
func (s *Store) Summary(ctx context.Context, runID string) (*RunSummary, error) {
    sum := &RunSummary{}
    ph := s.dialect.param(1)

    err := s.DB.QueryRowContext(ctx, "SELECT base_url, pages FROM link_runs WHERE id = "+ph, runID).
        Scan(&sum.BaseURL, &sum.Pages)
    if err == sql.ErrNoRows {
        return nil, errors.Errorf("run %s not found", runID)
    }
    if err != nil {
        return nil, errors.Wrap(err, "failed to load run")
    }

    if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM link_edges WHERE run_id = "+ph, runID).
        Scan(&sum.Edges); err != nil {
        return nil, errors.Wrap(err, "failed to count edges")
    }

    rows, err := s.DB.QueryContext(ctx,
        "SELECT url FROM link_pages WHERE run_id = "+ph+" AND orphan ORDER BY url", runID)
    if err != nil {
        return nil, errors.Wrap(err, "failed to load orphans")
    }
    defer rows.Close()

    for rows.Next() {
        var url string
        if err := rows.Scan(&url); err != nil {
            return nil, err
        }
        sum.Orphans = append(sum.Orphans, url)
    }

    return sum, rows.Err()
}

func (s *Store) Close() error {
    return s.DB.Close()
}

func sortedURLs(m map[string]int) []string {
    urls := make([]string, 0, len(m))
    for url := range m {
        urls = append(urls, url)
    }
    sort.Strings(urls)
    return urls
}
