package graph

import (
    "path/filepath"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "tradematch-seo/models"
)

func link(url string, ctx models.LinkContext) models.Link {
    return models.Link{URL: url, Label: url, Weight: 20, Context: ctx}
}

func TestFinalizeCountsInboundAndOrphans(t *testing.T) {
    run := NewRun("https://www.tradematch.uk")

    run.Record("/services/plumbing/bath", 70, 2, []models.Link{
        link("/", models.ContextNav),
        link("/services/plumbing/exeter", models.ContextNearby),
    })
    run.Record("/services/plumbing/exeter", 70, 2, []models.Link{
        link("/", models.ContextNav),
    })
    run.Record("/services/plumbing/truro", 30, 4, nil)

    run.Finalize()

    inbound := run.InboundCounts()
    assert.Equal(t, 2, inbound["/"])
    assert.Equal(t, 1, inbound["/services/plumbing/exeter"])
    assert.Equal(t, 0, inbound["/services/plumbing/bath"])
    assert.Equal(t, 0, inbound["/services/plumbing/truro"])

    // A page linked from exactly one other page is not an orphan.
    assert.Equal(t, []string{"/services/plumbing/bath", "/services/plumbing/truro"}, run.Orphans())
}

func TestFinalizeSeesLaterInboundEdges(t *testing.T) {
    run := NewRun("")

    run.Record("/a", 30, 4, nil)
    run.Finalize()
    assert.Equal(t, []string{"/a"}, run.Orphans())

    run.Record("/b", 30, 4, []models.Link{link("/a", models.ContextNearby)})
    assert.False(t, run.Finalized())
    run.Finalize()
    assert.Equal(t, []string{"/b"}, run.Orphans())
}

func TestRecordCopiesLinks(t *testing.T) {
    run := NewRun("")
    links := []models.Link{link("/x", models.ContextNav)}
    run.Record("/a", 30, 4, links)
    links[0].URL = "/mutated"

    rec, ok := run.Page("/a")
    require.True(t, ok)
    assert.Equal(t, "/x", rec.Outgoing[0].URL)
}

func TestConcurrentRecord(t *testing.T) {
    run := NewRun("")

    var wg sync.WaitGroup
    for i := 0; i < 50; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            run.Record("/p/"+string(rune('a'+i%26))+string(rune('a'+i/26)), 30, 4, []models.Link{link("/", models.ContextNav)})
        }(i)
    }
    wg.Wait()
    run.Finalize()

    assert.Equal(t, 50, run.Len())
    assert.Equal(t, 50, run.InboundCounts()["/"])
    assert.Len(t, run.Orphans(), 50)
}

func TestArtifactRoundTrip(t *testing.T) {
    run := NewRun("https://www.tradematch.uk")
    run.Record("/services/", 80, 1, []models.Link{link("/services/plumbing/", models.ContextContextual)})
    run.Record("/services/plumbing/", 80, 1, []models.Link{
        link("/services/plumbing/bath", models.ContextContextual),
        link("/services/", models.ContextNav),
    })
    run.Record("/locations/", 80, 1, nil)

    path := filepath.Join(t.TempDir(), "debug", "internal-link-debug.json")
    require.NoError(t, run.WriteArtifact(path))

    a, err := LoadArtifact(path)
    require.NoError(t, err)
    assert.Equal(t, run.ID.String(), a.RunID)
    assert.Equal(t, "https://www.tradematch.uk", a.BaseURL)
    require.Len(t, a.Pages, 3)
    assert.Equal(t, "/services/plumbing/", a.Pages["/services/plumbing/"].URL)
    assert.Equal(t, 80, a.Pages["/services/"].PageValue)
    assert.Equal(t, 3, a.EdgeCount())
    assert.Equal(t, 2, a.ContextCounts()[models.ContextContextual])
    assert.Equal(t, 1, a.InboundCounts["/services/plumbing/bath"])
    assert.Equal(t, []string{"/locations/"}, a.Orphans)
}

func TestLoadArtifactErrors(t *testing.T) {
    _, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
    assert.Error(t, err)
}

func TestFinalizeIgnoresExternalAndAssetLinks(t *testing.T) {
    run := NewRun("")
    run.Record("/a", 30, 4, []models.Link{
        link("https://example.com/", models.ContextFooter),
        link("/styles/site.css", models.ContextNav),
        link("/how-it-works.html", models.ContextNav),
    })
    run.Finalize()

    counts := run.InboundCounts()
    assert.NotContains(t, counts, "https://example.com/")
    assert.NotContains(t, counts, "/styles/site.css")
    assert.Equal(t, 1, counts["/how-it-works.html"])
    assert.Equal(t, []string{"/a"}, run.Orphans())

    rec, ok := run.Page("/a")
    require.True(t, ok)
    assert.Len(t, rec.Outgoing, 3)
}
