package report

import (
    "fmt"
    "io"
    "os"
    "strings"

    "github.com/pkg/errors"

    "tradematch-seo/graph"
    "tradematch-seo/models"
)

// Stats summarises one link-graph debug artifact.
type Stats struct {
    Path      string
    Pages     int
    Edges     int
    Orphans   int
    Size      int64
    Contexts  map[models.LinkContext]int
    MaxWeight float64
}

func FromArtifact(a *graph.Artifact) *Stats {
    s := &Stats{
        Pages:    len(a.Pages),
        Edges:    a.EdgeCount(),
        Orphans:  len(a.Orphans),
        Contexts: a.ContextCounts(),
    }
    for _, rec := range a.Pages {
        for _, link := range rec.Outgoing {
            if link.Weight > s.MaxWeight {
                s.MaxWeight = link.Weight
            }
        }
    }
    return s
}

// Load reads the artifact at path and summarises it.
func Load(path string) (*Stats, error) {
    info, err := os.Stat(path)
    if err != nil {
        return nil, errors.Wrapf(err, "failed to stat %s", path)
    }

    a, err := graph.LoadArtifact(path)
    if err != nil {
        return nil, err
    }

    s := FromArtifact(a)
    s.Path = path
    s.Size = info.Size()
    return s, nil
}

func (s *Stats) AvgLinks() float64 {
    if s.Pages == 0 {
        return 0
    }
    return float64(s.Edges) / float64(s.Pages)
}

// Print writes a single-run summary.
func Print(w io.Writer, s *Stats) {
    fmt.Fprintln(w, "📈 Internal Link Report")
    fmt.Fprintln(w, "=======================")
    if s.Path != "" {
        fmt.Fprintf(w, "Artifact: %s (%s)\n", s.Path, formatBytes(s.Size))
    }
    fmt.Fprintf(w, "Pages: %d\n", s.Pages)
    fmt.Fprintf(w, "Edges: %d\n", s.Edges)
    fmt.Fprintf(w, "Orphans: %d\n", s.Orphans)
    fmt.Fprintf(w, "Average links per page: %.2f\n", s.AvgLinks())
    fmt.Fprintf(w, "Highest link weight: %.2f\n", s.MaxWeight)

    fmt.Fprintln(w, "\n🔗 Links by context")
    fmt.Fprintln(w, "===================")
    for _, ctx := range models.ContextPriority {
        fmt.Fprintf(w, "%-20s %d\n", ctx, s.Contexts[ctx])
    }
}

// Compare writes a side-by-side table of two runs with percentage deltas.
func Compare(w io.Writer, previous, current *Stats) {
    fmt.Fprintln(w, "📈 Link Graph Comparison")
    fmt.Fprintln(w, "========================")

    fmt.Fprintf(w, "%-20s %-15s %-15s %-15s\n", "Metric", "Previous", "Current", "Change")
    fmt.Fprintln(w, strings.Repeat("-", 65))

    row := func(name string, prev, cur int) {
        fmt.Fprintf(w, "%-20s %-15d %-15d %-15s\n", name, prev, cur, calculateChange(prev, cur))
    }
    row("Pages", previous.Pages, current.Pages)
    row("Edges", previous.Edges, current.Edges)
    row("Orphans", previous.Orphans, current.Orphans)
    for _, ctx := range models.ContextPriority {
        row(string(ctx), previous.Contexts[ctx], current.Contexts[ctx])
    }

    fmt.Fprintf(w, "%-20s %-15.2f %-15.2f %-15s\n", "Avg links/page",
        previous.AvgLinks(), current.AvgLinks(), calculateChangeFloat(previous.AvgLinks(), current.AvgLinks()))
    fmt.Fprintf(w, "%-20s %-15s %-15s %-15s\n", "Artifact size",
        formatBytes(previous.Size), formatBytes(current.Size), calculateChange(int(previous.Size), int(current.Size)))

    if current.Orphans < previous.Orphans {
        fmt.Fprintf(w, "\n• Orphan reduction: %d fewer orphan pages\n", previous.Orphans-current.Orphans)
    }
}

func calculateChange(previous, current int) string {
    return calculateChangeFloat(float64(previous), float64(current))
}

func calculateChangeFloat(previous, current float64) string {
    if previous == 0 {
        return "N/A"
    }

    change := ((current - previous) / previous) * 100
    if change > 0 {
        return fmt.Sprintf("+%.1f%%", change)
    } else if change < 0 {
        return fmt.Sprintf("%.1f%%", change)
    }
    return "0%"
}

func formatBytes(bytes int64) string {
    const unit = 1024
    if bytes < unit {
        return fmt.Sprintf("%d B", bytes)
    }
    div, exp := int64(unit), 0
    for n := bytes / unit; n >= unit; n /= unit {
        div *= unit
        exp++
    }
    return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
