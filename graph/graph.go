package graph

import (
    "encoding/json"
    "os"
    "path/filepath"
    "sort"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/pkg/errors"

    "tradematch-seo/models"
    "tradematch-seo/utils"
)

// Run accumulates page records for one generation run. Record is safe for
// concurrent use; Finalize must be called once every page has been recorded.
type Run struct {
    ID         uuid.UUID
    BaseURL    string
    StartedAt  time.Time
    FinishedAt time.Time

    mu        sync.Mutex
    pages     map[string]models.PageRecord
    finalized bool
    inbound   map[string]int
    orphans   []string
}

func NewRun(baseURL string) *Run {
    return &Run{
        ID:        uuid.New(),
        BaseURL:   baseURL,
        StartedAt: time.Now().UTC(),
        pages:     make(map[string]models.PageRecord),
    }
}

// Record stores the final outgoing links of url, replacing any earlier record.
func (r *Run) Record(url string, pageValue, pageDepth int, outgoing []models.Link) {
    links := make([]models.Link, len(outgoing))
    copy(links, outgoing)

    r.mu.Lock()
    defer r.mu.Unlock()

    r.pages[url] = models.PageRecord{
        URL:       url,
        PageValue: pageValue,
        PageDepth: pageDepth,
        Outgoing:  links,
    }
    r.finalized = false
}

func (r *Run) Len() int {
    r.mu.Lock()
    defer r.mu.Unlock()
    return len(r.pages)
}

// Page returns the record stored for url.
func (r *Run) Page(url string) (models.PageRecord, bool) {
    r.mu.Lock()
    defer r.mu.Unlock()
    rec, ok := r.pages[url]
    return rec, ok
}

// URLs lists recorded pages in lexical order.
func (r *Run) URLs() []string {
    r.mu.Lock()
    defer r.mu.Unlock()
    return sortedKeys(r.pages)
}

// Finalize derives inbound counts and orphans from the complete page set.
// Every recorded page starts at zero; link targets that were never recorded
// are registered too, so they can only be orphans if nothing points at them.
// Absolute and asset links do not count as edges.
func (r *Run) Finalize() {
    r.mu.Lock()
    defer r.mu.Unlock()

    inbound := make(map[string]int, len(r.pages))
    for url := range r.pages {
        inbound[url] = 0
    }
    for _, rec := range r.pages {
        for _, link := range rec.Outgoing {
            if !utils.IsInternalURL(link.URL) {
                continue
            }
            inbound[link.URL]++
        }
    }

    var orphans []string
    for url, count := range inbound {
        if count == 0 {
            orphans = append(orphans, url)
        }
    }
    sort.Strings(orphans)

    r.inbound = inbound
    r.orphans = orphans
    r.finalized = true
    r.FinishedAt = time.Now().UTC()
}

// InboundCounts is only meaningful after Finalize.
func (r *Run) InboundCounts() map[string]int {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := make(map[string]int, len(r.inbound))
    for k, v := range r.inbound {
        out[k] = v
    }
    return out
}

func (r *Run) Orphans() []string {
    r.mu.Lock()
    defer r.mu.Unlock()
    return append([]string(nil), r.orphans...)
}

func (r *Run) Finalized() bool {
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.finalized
}

// Artifact is the JSON debug document written after a run.
type Artifact struct {
    RunID         string                       `json:"run_id,omitempty"`
    BaseURL       string                       `json:"base_url"`
    Pages         map[string]models.PageRecord `json:"pages"`
    InboundCounts map[string]int               `json:"inbound_counts"`
    Orphans       []string                     `json:"orphans"`
}

// Artifact snapshots the run. It finalizes first if needed.
func (r *Run) Artifact() *Artifact {
    if !r.Finalized() {
        r.Finalize()
    }

    r.mu.Lock()
    defer r.mu.Unlock()

    pages := make(map[string]models.PageRecord, len(r.pages))
    for url, rec := range r.pages {
        pages[url] = rec
    }
    inbound := make(map[string]int, len(r.inbound))
    for url, count := range r.inbound {
        inbound[url] = count
    }
    orphans := append([]string{}, r.orphans...)

    return &Artifact{
        RunID:         r.ID.String(),
        BaseURL:       r.BaseURL,
        Pages:         pages,
        InboundCounts: inbound,
        Orphans:       orphans,
    }
}

// EdgeCount is the total number of outgoing links across pages.
func (a *Artifact) EdgeCount() int {
    n := 0
    for _, rec := range a.Pages {
        n += len(rec.Outgoing)
    }
    return n
}

// ContextCounts tallies outgoing links by context.
func (a *Artifact) ContextCounts() map[models.LinkContext]int {
    counts := make(map[models.LinkContext]int)
    for _, rec := range a.Pages {
        for _, link := range rec.Outgoing {
            counts[link.Context]++
        }
    }
    return counts
}

// WriteArtifact writes the run's debug document to path as indented JSON.
func (r *Run) WriteArtifact(path string) error {
    data, err := json.MarshalIndent(r.Artifact(), "", "  ")
    if err != nil {
        return errors.Wrap(err, "failed to encode link graph")
    }

    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return errors.Wrapf(err, "failed to create directory for %s", path)
    }
    if err := os.WriteFile(path, data, 0o644); err != nil {
        return errors.Wrapf(err, "failed to write link graph %s", path)
    }
    return nil
}

// LoadArtifact reads a debug document written by WriteArtifact.
func LoadArtifact(path string) (*Artifact, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return nil, errors.Wrapf(err, "failed to read link graph %s", path)
    }

    var a Artifact
    if err := json.Unmarshal(data, &a); err != nil {
        return nil, errors.Wrapf(err, "failed to decode link graph %s", path)
    }
    for url, rec := range a.Pages {
        rec.URL = url
        a.Pages[url] = rec
    }
    return &a, nil
}

func sortedKeys(m map[string]models.PageRecord) []string {
    keys := make([]string, 0, len(m))
    for k := range m {
        keys = append(keys, k)
    }
    sort.Strings(keys)
    return keys
}
