package database

import (
    "context"
    "fmt"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "tradematch-seo/graph"
    "tradematch-seo/models"
)

func openTestStore(t *testing.T) *Store {
    t.Helper()
    store, err := Open(context.Background(), "sqlite", ":memory:")
    require.NoError(t, err)
    t.Cleanup(func() { store.Close() })
    return store
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
    _, err := Open(context.Background(), "mysql", "")
    require.Error(t, err)
    assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpenIsRepeatable(t *testing.T) {
    store := openTestStore(t)
    require.NoError(t, store.createTables(context.Background()))
}

func TestSaveRun(t *testing.T) {
    store := openTestStore(t)
    ctx := context.Background()

    run := graph.NewRun("https://www.tradematch.uk")
    run.Record("/services/plumbing/bath", 70, 2, []models.Link{
        {URL: "/", Label: "Home", Weight: 105, Context: models.ContextBreadcrumbs},
        {URL: "/services/plumbing/exeter", Label: "Exeter", Weight: 38.5, Context: models.ContextNearby},
    })
    run.Record("/services/plumbing/exeter", 70, 2, []models.Link{
        {URL: "/", Label: "Home", Weight: 105, Context: models.ContextBreadcrumbs},
    })
    run.Finalize()

    require.NoError(t, store.SaveRun(ctx, run))

    sum, err := store.Summary(ctx, run.ID.String())
    require.NoError(t, err)
    assert.Equal(t, "https://www.tradematch.uk", sum.BaseURL)
    assert.Equal(t, 2, sum.Pages)
    assert.Equal(t, 3, sum.Edges)
    assert.Equal(t, []string{"/services/plumbing/bath"}, sum.Orphans)

    var inbound int
    var value any
    require.NoError(t, store.DB.QueryRowContext(ctx,
        "SELECT inbound_count, page_value FROM link_pages WHERE run_id = ? AND url = ?", run.ID.String(), "/").
        Scan(&inbound, &value))
    assert.Equal(t, 2, inbound)
    assert.Nil(t, value)

    var position int
    require.NoError(t, store.DB.QueryRowContext(ctx,
        "SELECT position FROM link_edges WHERE run_id = ? AND target_url = ?", run.ID.String(), "/services/plumbing/exeter").
        Scan(&position))
    assert.Equal(t, 1, position)
}

func TestSaveRunBatches(t *testing.T) {
    store := openTestStore(t)
    ctx := context.Background()

    run := graph.NewRun("https://www.tradematch.uk")
    total := 0
    for p := 0; p < 3; p++ {
        var links []models.Link
        for i := 0; i < 250; i++ {
            links = append(links, models.Link{URL: fmt.Sprintf("/target/%d", i), Label: "t", Weight: 20, Context: models.ContextNav})
        }
        total += len(links)
        run.Record(fmt.Sprintf("/source/%d", p), 55, 3, links)
    }

    require.NoError(t, store.SaveRun(ctx, run))

    sum, err := store.Summary(ctx, run.ID.String())
    require.NoError(t, err)
    assert.Equal(t, total, sum.Edges)
    assert.Equal(t, 3, sum.Pages)
    assert.Len(t, sum.Orphans, 3)

    // Link targets that were never patched still get a link_pages row.
    var nodes int
    require.NoError(t, store.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM link_pages WHERE run_id = ?", run.ID.String()).Scan(&nodes))
    assert.Equal(t, 253, nodes)
}

func TestSummaryUnknownRun(t *testing.T) {
    store := openTestStore(t)
    _, err := store.Summary(context.Background(), "00000000-0000-0000-0000-000000000000")
    require.Error(t, err)
    assert.Contains(t, err.Error(), "not found")
}

func TestPlaceholders(t *testing.T) {
    assert.Equal(t, "($1, $2), ($3, $4)", postgresDialect{}.placeholders(2, 2))
    assert.Equal(t, "(?, ?, ?)", sqliteDialect{}.placeholders(1, 3))
}
