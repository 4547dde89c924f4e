package rollout

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/pkg/errors"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "tradematch-seo/sitemap"
)

const testBaseURL = "https://www.tradematch.uk"

func writeFile(t *testing.T, dir, name, content string) string {
    t.Helper()
    path := filepath.Join(dir, name)
    require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
    return path
}

func TestNormalizeKey(t *testing.T) {
    assert.Equal(t, "discoveredurls", NormalizeKey("Discovered URLs"))
    assert.Equal(t, "indexingstate", NormalizeKey(" Indexing-State "))
}

func TestSniffDelimiter(t *testing.T) {
    tests := []struct {
        name   string
        sample string
        want   rune
    }{
        {"comma", "Sitemap,Submitted,Indexed\na,1,2\n", ','},
        {"semicolon", "Sitemap;Submitted;Indexed\na;\"1,200\";2\n", ';'},
        {"tab", "Sitemap\tSubmitted\tIndexed\na\t1\t2\n", '\t'},
        {"single column", "Status\nIndexed\n", ','},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            assert.Equal(t, tt.want, SniffDelimiter([]byte(tt.sample)))
        })
    }
}

func TestParseCount(t *testing.T) {
    n, err := ParseCount("12,345")
    require.NoError(t, err)
    assert.Equal(t, 12345, n)

    n, err = ParseCount("")
    require.NoError(t, err)
    assert.Equal(t, 0, n)

    _, err = ParseCount("lots")
    assert.Error(t, err)
}

func TestLoadSitemapsReport(t *testing.T) {
    dir := t.TempDir()
    path := writeFile(t, dir, "sitemaps.csv", "\ufeffSitemap;Type;Submitted URLs;Indexed URLs\n"+
        "https://www.tradematch.uk/sitemaps/phased/sitemap-index-phase-1.xml;Index;\"1,000\";750\n"+
        ";Index;5;5\n"+
        "https://www.tradematch.uk/sitemaps/phased/sitemap-index-phase-2.xml;Index;2000;100\n")

    stats, err := LoadSitemapsReport(path)
    require.NoError(t, err)
    require.Len(t, stats, 2)
    assert.Equal(t, 1000, stats[0].Submitted)
    assert.Equal(t, 750, stats[0].Indexed)

    r, ok := PhaseRatioFromReport(stats, "phase-2")
    require.True(t, ok)
    assert.Equal(t, PhaseRatio{Ratio: 0.05, Submitted: 2000, Indexed: 100}, r)

    _, ok = PhaseRatioFromReport(stats, "phase-4")
    assert.False(t, ok)
}

func TestLoadSitemapsReportMissingColumns(t *testing.T) {
    path := writeFile(t, t.TempDir(), "sitemaps.csv", "Sitemap,Submitted\na,1\n")
    _, err := LoadSitemapsReport(path)
    assert.True(t, errors.Is(err, ErrMissingSitemapColumns))

    _, err = LoadSitemapsReport(filepath.Join(t.TempDir(), "missing.csv"))
    assert.Error(t, err)
}

func TestLoadPagesReport(t *testing.T) {
    path := writeFile(t, t.TempDir(), "pages.csv", "URL,Indexing state\n"+
        "/a,Indexed\n/b,Soft 404\n/c,Duplicate without user-selected canonical\n/d,\n/e,Discovered - currently not indexed\n")

    report, err := LoadPagesReport(path)
    require.NoError(t, err)
    assert.Equal(t, 4, report.Total)
    assert.Equal(t, 1, report.Matching("SOFT 404"))
    assert.Equal(t, 1, report.Matching("duplicate"))

    path = writeFile(t, t.TempDir(), "pages.csv", "URL,Clicks\n/a,1\n")
    _, err = LoadPagesReport(path)
    assert.True(t, errors.Is(err, ErrMissingStatusColumn))
}

func TestRatioRounding(t *testing.T) {
    r, ok := PhaseRatioFromReport([]SitemapStats{{Sitemap: "phase-1", Submitted: 3, Indexed: 2}}, "phase-1")
    require.True(t, ok)
    assert.Equal(t, 0.6667, r.Ratio)

    r, _ = PhaseRatioFromReport([]SitemapStats{{Sitemap: "phase-1"}}, "phase-1")
    assert.Equal(t, 0.0, r.Ratio)
}

func TestEvaluateUnlocksNextPhase(t *testing.T) {
    s := NewState()
    s.Evaluate([]SitemapStats{
        {Sitemap: "sitemap-index-phase-1.xml", Submitted: 100, Indexed: 70},
        {Sitemap: "sitemap-index-phase-2.xml", Submitted: 100, Indexed: 90},
    }, nil, DefaultThresholds())

    // phase-2 passing unlocks phase-3 even though phase-2 was only just unlocked.
    assert.Equal(t, []string{"phase-1", "phase-2", "phase-3"}, s.UnlockedPhases)
    assert.Empty(t, s.Alerts)
}

func TestEvaluateBelowThreshold(t *testing.T) {
    s := NewState()
    s.Evaluate([]SitemapStats{{Sitemap: "phase-1", Submitted: 100, Indexed: 69}}, nil, DefaultThresholds())
    assert.Equal(t, []string{"phase-1"}, s.UnlockedPhases)
    assert.Equal(t, 0.69, s.Ratios["phase-1"].Ratio)
}

func TestEvaluateAlerts(t *testing.T) {
    pages := &PagesReport{Total: 100, Counts: map[string]int{
        "Indexed":                            60,
        "Soft 404":                           2,
        "Duplicate, Google chose different":  5,
        "Discovered - currently not indexed": 33,
    }}

    s := NewState()
    s.Evaluate(nil, pages, DefaultThresholds())
    assert.Equal(t, []string{AlertSoft404, AlertDiscovered}, s.Alerts)
    assert.Equal(t, &PagesSummary{Total: 100, Soft404: 2, Duplicate: 5, Discovered: 33}, s.PagesReport)

    s.Evaluate(nil, &PagesReport{Total: 10, Counts: map[string]int{"Indexed": 10}}, DefaultThresholds())
    assert.Empty(t, s.Alerts)
}

func TestLoadStateNeverRegresses(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, StateFile)

    prev := NewState()
    prev.UnlockedPhases = []string{"phase-1", "phase-2", "phase-2", "phase-3"}
    prev.Ratios["phase-1"] = PhaseRatio{Ratio: 0.9, Submitted: 10, Indexed: 9}
    require.NoError(t, prev.Write(path))

    s := LoadState(path)
    s.Evaluate([]SitemapStats{{Sitemap: "phase-1", Submitted: 10, Indexed: 1}}, nil, DefaultThresholds())
    assert.Equal(t, []string{"phase-1", "phase-2", "phase-3"}, s.UnlockedPhases)
    assert.Equal(t, 0.1, s.Ratios["phase-1"].Ratio)
}

func TestLoadStateCorrupt(t *testing.T) {
    path := writeFile(t, t.TempDir(), StateFile, "{not json")
    assert.Equal(t, NewState(), LoadState(path))
    assert.Equal(t, NewState(), LoadState(filepath.Join(t.TempDir(), StateFile)))
}

func TestRun(t *testing.T) {
    dir := t.TempDir()
    now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

    phases := []sitemap.Phase{
        {Name: "phase-1", Priority: 0.9, URLs: []string{testBaseURL + "/"}},
        {Name: "phase-2", Priority: 0.9, URLs: []string{testBaseURL + "/services/tiling/london"}},
    }
    _, err := sitemap.Write(dir, testBaseURL, 100, phases, now)
    require.NoError(t, err)

    sitemaps := writeFile(t, t.TempDir(), "sitemaps.csv", "Sitemap\tSubmitted\tIndexed\n"+
        "sitemap-index-phase-1.xml\t1,000\t800\n"+
        "sitemap-index-phase-2.xml\t500\t400\n")

    state, err := Run(Options{
        Dir:            dir,
        BaseURL:        testBaseURL,
        SitemapsReport: sitemaps,
        Thresholds:     DefaultThresholds(),
        Now:            now,
    })
    require.NoError(t, err)
    assert.Equal(t, []string{"phase-1", "phase-2", "phase-3"}, state.UnlockedPhases)

    // phase-3 is unlocked but has no index yet.
    live, err := sitemap.ReadIndex(filepath.Join(dir, LiveIndexFile))
    require.NoError(t, err)
    assert.Equal(t, []string{
        testBaseURL + "/sitemaps/phased/sitemap-index-phase-1.xml",
        testBaseURL + "/sitemaps/phased/sitemap-index-phase-2.xml",
    }, live)

    for _, name := range []string{StateFile, ReportFile} {
        raw, err := os.ReadFile(filepath.Join(dir, name))
        require.NoError(t, err)

        var decoded map[string]any
        require.NoError(t, json.Unmarshal(raw, &decoded))
        assert.Contains(t, decoded, "unlocked_phases")
        assert.Contains(t, decoded, "ratios")
        assert.Contains(t, decoded, "alerts")
        assert.NotContains(t, decoded, "pages_report")
    }
}
