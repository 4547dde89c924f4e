package metrics

import (
    "os"
    "path/filepath"

    "github.com/pkg/errors"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"

    "tradematch-seo/models"
)

// Registry holds the counters of one patch run on a private prometheus
// registry.
type Registry struct {
    registry *prometheus.Registry

    PagesPatched prometheus.Counter
    PagesSkipped prometheus.Counter
    LinksKept    *prometheus.CounterVec
    LinksPruned  *prometheus.CounterVec
    OrphanPages  prometheus.Gauge
    PageLinks    prometheus.Histogram
}

func NewRegistry() *Registry {
    r := &Registry{registry: prometheus.NewRegistry()}

    r.PagesPatched = promauto.With(r.registry).NewCounter(
        prometheus.CounterOpts{
            Name: "tmseo_pages_patched_total",
            Help: "Service/location pages rewritten with link sections",
        },
    )

    r.PagesSkipped = promauto.With(r.registry).NewCounter(
        prometheus.CounterOpts{
            Name: "tmseo_pages_skipped_total",
            Help: "Service/location pairs without a generated page",
        },
    )

    r.LinksKept = promauto.With(r.registry).NewCounterVec(
        prometheus.CounterOpts{
            Name: "tmseo_links_kept_total",
            Help: "Links kept after budget enforcement",
        },
        []string{"context"},
    )

    r.LinksPruned = promauto.With(r.registry).NewCounterVec(
        prometheus.CounterOpts{
            Name: "tmseo_links_pruned_total",
            Help: "Candidate links dropped by the page budget",
        },
        []string{"context"},
    )

    r.OrphanPages = promauto.With(r.registry).NewGauge(
        prometheus.GaugeOpts{
            Name: "tmseo_orphan_pages",
            Help: "Pages without inbound internal links after the last run",
        },
    )

    r.PageLinks = promauto.With(r.registry).NewHistogram(
        prometheus.HistogramOpts{
            Name:    "tmseo_page_links",
            Help:    "Kept links per patched page",
            Buckets: []float64{5, 10, 15, 20, 25, 30, 35, 40, 45},
        },
    )

    return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
    return r.registry
}

// RecordPage counts the kept and pruned links of one page.
func (r *Registry) RecordPage(kept models.Sections, pruned map[models.LinkContext]int) {
    total := 0
    for _, ctx := range models.ContextPriority {
        n := len(kept[ctx])
        total += n
        r.LinksKept.WithLabelValues(string(ctx)).Add(float64(n))
        r.LinksPruned.WithLabelValues(string(ctx)).Add(float64(pruned[ctx]))
    }
    r.PageLinks.Observe(float64(total))
}

// WriteTextfile exports every metric in the node-exporter textfile format.
func (r *Registry) WriteTextfile(path string) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return errors.Wrapf(err, "failed to create metrics directory for %s", path)
    }
    if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
        return errors.Wrapf(err, "failed to write metrics %s", path)
    }
    return nil
}
