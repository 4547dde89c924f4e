package rollout

import (
    "encoding/json"
    "log/slog"
    "math"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/pkg/errors"

    "tradematch-seo/sitemap"
)

const (
    StateFile     = "rollout-state.json"
    ReportFile    = "rollout-report.json"
    LiveIndexFile = "sitemap-index-live.xml"
)

const (
    AlertSoft404    = "Soft 404 ratio above threshold"
    AlertDuplicate  = "Duplicate ratio above threshold"
    AlertDiscovered = "Discovered not indexed ratio above threshold"
)

type Thresholds struct {
    MinIndexRatio float64
    MaxSoft404    float64
    MaxDuplicate  float64
    MaxDiscovered float64
}

func DefaultThresholds() Thresholds {
    return Thresholds{
        MinIndexRatio: 0.7,
        MaxSoft404:    0.01,
        MaxDuplicate:  0.05,
        MaxDiscovered: 0.2,
    }
}

type PhaseRatio struct {
    Ratio     float64 `json:"ratio"`
    Submitted int     `json:"submitted"`
    Indexed   int     `json:"indexed"`
}

type PagesSummary struct {
    Total      int `json:"total"`
    Soft404    int `json:"soft_404"`
    Duplicate  int `json:"duplicate"`
    Discovered int `json:"discovered"`
}

// State is persisted between runs. Unlocked phases only ever grow.
type State struct {
    UnlockedPhases []string              `json:"unlocked_phases"`
    Ratios         map[string]PhaseRatio `json:"ratios"`
    Alerts         []string              `json:"alerts"`
    PagesReport    *PagesSummary         `json:"pages_report,omitempty"`
}

func NewState() *State {
    return &State{
        UnlockedPhases: []string{sitemap.PhaseNames[0]},
        Ratios:         make(map[string]PhaseRatio),
        Alerts:         []string{},
    }
}

// LoadState reads a previous state. A missing or unreadable file yields a
// fresh state.
func LoadState(path string) *State {
    state := NewState()

    data, err := os.ReadFile(path)
    if err != nil {
        if !os.IsNotExist(err) {
            slog.Warn("Failed to read rollout state", "path", path, "error", err)
        }
        return state
    }

    var prev State
    if err := json.Unmarshal(data, &prev); err != nil {
        slog.Warn("Ignoring corrupt rollout state", "path", path, "error", err)
        return state
    }

    if len(prev.UnlockedPhases) > 0 {
        state.UnlockedPhases = dedupe(prev.UnlockedPhases)
    }
    for phase, r := range prev.Ratios {
        state.Ratios[phase] = r
    }
    state.PagesReport = prev.PagesReport
    return state
}

func dedupe(values []string) []string {
    seen := make(map[string]bool, len(values))
    out := make([]string, 0, len(values))
    for _, v := range values {
        if !seen[v] {
            seen[v] = true
            out = append(out, v)
        }
    }
    return out
}

func round4(v float64) float64 {
    return math.Round(v*10000) / 10000
}

// PhaseRatioFromReport finds the first sitemap whose name contains phase.
func PhaseRatioFromReport(report []SitemapStats, phase string) (PhaseRatio, bool) {
    for _, s := range report {
        if !strings.Contains(s.Sitemap, phase) {
            continue
        }
        ratio := 0.0
        if s.Submitted > 0 {
            ratio = float64(s.Indexed) / float64(s.Submitted)
        }
        return PhaseRatio{Ratio: round4(ratio), Submitted: s.Submitted, Indexed: s.Indexed}, true
    }
    return PhaseRatio{}, false
}

func (s *State) Unlocked(phase string) bool {
    for _, p := range s.UnlockedPhases {
        if p == phase {
            return true
        }
    }
    return false
}

// Evaluate folds a sitemaps report and an optional pages report into s.
// Alerts are recomputed on every evaluation.
func (s *State) Evaluate(sitemaps []SitemapStats, pages *PagesReport, th Thresholds) {
    for _, phase := range sitemap.PhaseNames {
        if r, ok := PhaseRatioFromReport(sitemaps, phase); ok {
            s.Ratios[phase] = r
        }
    }

    for i, phase := range sitemap.PhaseNames[:len(sitemap.PhaseNames)-1] {
        next := sitemap.PhaseNames[i+1]
        if s.Unlocked(next) {
            continue
        }
        r, ok := s.Ratios[phase]
        if ok && r.Ratio >= th.MinIndexRatio {
            s.UnlockedPhases = append(s.UnlockedPhases, next)
        }
    }

    s.Alerts = []string{}
    if pages == nil || pages.Total == 0 {
        return
    }

    summary := &PagesSummary{
        Total:      pages.Total,
        Soft404:    pages.Matching("soft 404"),
        Duplicate:  pages.Matching("duplicate"),
        Discovered: pages.Matching("discovered"),
    }
    total := float64(summary.Total)
    if float64(summary.Soft404)/total > th.MaxSoft404 {
        s.Alerts = append(s.Alerts, AlertSoft404)
    }
    if float64(summary.Duplicate)/total > th.MaxDuplicate {
        s.Alerts = append(s.Alerts, AlertDuplicate)
    }
    if float64(summary.Discovered)/total > th.MaxDiscovered {
        s.Alerts = append(s.Alerts, AlertDiscovered)
    }
    s.PagesReport = summary
}

func (s *State) Write(path string) error {
    data, err := json.MarshalIndent(s, "", "  ")
    if err != nil {
        return errors.Wrap(err, "failed to encode rollout state")
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return errors.Wrapf(err, "failed to create directory for %s", path)
    }
    if err := os.WriteFile(path, data, 0o644); err != nil {
        return errors.Wrapf(err, "failed to write %s", path)
    }
    return nil
}

// WriteLiveIndex lists the index of every unlocked phase that has been built.
func WriteLiveIndex(dir, baseURL string, unlocked []string, now time.Time) ([]string, error) {
    var locs []string
    for _, phase := range unlocked {
        name := sitemap.IndexName(phase)
        if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
            slog.Debug("Skipping unbuilt phase index", "phase", phase)
            continue
        }
        locs = append(locs, sitemap.PhasedLoc(baseURL, name))
    }

    if err := sitemap.WriteIndex(filepath.Join(dir, LiveIndexFile), locs, now.Format("2006-01-02")); err != nil {
        return nil, err
    }
    return locs, nil
}

// Options configures one gating run. Empty report paths are skipped.
type Options struct {
    Dir            string
    BaseURL        string
    SitemapsReport string
    PagesReport    string
    Thresholds     Thresholds
    Now            time.Time
}

// Run loads the reports, evaluates them against the saved state and writes the
// state, its report copy and the live index.
func Run(opts Options) (*State, error) {
    var sitemaps []SitemapStats
    if opts.SitemapsReport != "" {
        var err error
        if sitemaps, err = LoadSitemapsReport(opts.SitemapsReport); err != nil {
            return nil, err
        }
    }

    var pages *PagesReport
    if opts.PagesReport != "" {
        var err error
        if pages, err = LoadPagesReport(opts.PagesReport); err != nil {
            return nil, err
        }
    }

    statePath := filepath.Join(opts.Dir, StateFile)
    state := LoadState(statePath)
    state.Evaluate(sitemaps, pages, opts.Thresholds)

    if err := state.Write(statePath); err != nil {
        return nil, err
    }
    if _, err := WriteLiveIndex(opts.Dir, opts.BaseURL, state.UnlockedPhases, opts.Now); err != nil {
        return nil, err
    }
    if err := state.Write(filepath.Join(opts.Dir, ReportFile)); err != nil {
        return nil, err
    }

    slog.Info("Rollout gating complete",
        "unlocked", strings.Join(state.UnlockedPhases, ", "),
        "live_index", filepath.Join(opts.Dir, LiveIndexFile))
    for _, alert := range state.Alerts {
        slog.Warn("Rollout alert", "alert", alert)
    }
    return state, nil
}
