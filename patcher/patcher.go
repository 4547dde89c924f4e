package patcher

import (
    "context"
    "log/slog"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "time"

    "github.com/pkg/errors"
    "golang.org/x/sync/errgroup"
    "golang.org/x/time/rate"

    "tradematch-seo/graph"
    "tradematch-seo/htmlpatch"
    "tradematch-seo/hubs"
    "tradematch-seo/linking"
    "tradematch-seo/metrics"
    "tradematch-seo/models"
)

// ProgressEvery is how many pages pass between progress log lines. Lines are
// logged at exact multiples of it.
const ProgressEvery = 5000

// ErrorLogFirst page failures are always logged; after that at most one per
// ErrorLogInterval. Every failure is still counted.
const (
    ErrorLogFirst    = 10
    ErrorLogInterval = 10 * time.Second
)

// Patcher rewrites every generated service/location page under PagesDir with
// budgeted link sections and records the result into a graph run.
type Patcher struct {
    engine   *linking.Engine
    run      *graph.Run
    metrics  *metrics.Registry
    pagesDir string
    workers  int
    errorLog rate.Sometimes
}

func New(engine *linking.Engine, run *graph.Run, reg *metrics.Registry, pagesDir string, workers int) *Patcher {
    if workers < 1 {
        workers = 1
    }
    return &Patcher{
        engine:   engine,
        run:      run,
        metrics:  reg,
        pagesDir: pagesDir,
        workers:  workers,
        errorLog: rate.Sometimes{First: ErrorLogFirst, Interval: ErrorLogInterval},
    }
}

type pageJob struct {
    path     string
    service  models.Service
    location models.Location
}

type pageResult struct {
    plan   *linking.PagePlan
    filled []htmlpatch.Slot
    size   int64
    path   string
    err    error
}

// PagePath is where the generated page for a service/location pair lives.
func PagePath(pagesDir, serviceSlug, locationSlug string) string {
    return filepath.Join(pagesDir, "services", serviceSlug, locationSlug+".html")
}

// Run patches all pages, writes the hub pages and finalizes the graph. Page
// level failures are counted and logged; only cancellation aborts the run.
func (p *Patcher) Run(ctx context.Context) (*models.PatchStats, error) {
    start := time.Now()
    stats := &models.PatchStats{}

    jobs := make(chan pageJob, p.workers*2)
    results := make(chan pageResult, p.workers*2)

    g, gctx := errgroup.WithContext(ctx)

    var skipped int
    g.Go(func() error {
        defer close(jobs)
        n, err := p.enqueue(gctx, jobs)
        skipped = n
        return err
    })

    var wg sync.WaitGroup
    for i := 0; i < p.workers; i++ {
        wg.Add(1)
        g.Go(func() error {
            defer wg.Done()
            return p.worker(gctx, jobs, results)
        })
    }

    go func() {
        wg.Wait()
        close(results)
    }()

    for result := range results {
        p.collect(stats, result)
    }

    if err := g.Wait(); err != nil {
        stats.Duration = time.Since(start)
        return stats, err
    }

    stats.PagesSkipped = skipped
    if p.metrics != nil {
        p.metrics.PagesSkipped.Add(float64(skipped))
    }

    n, err := hubs.WriteAll(p.pagesDir, p.run, hubs.Build(p.engine))
    stats.HubPages = n
    if err != nil {
        stats.Duration = time.Since(start)
        return stats, errors.Wrap(err, "failed to generate hub pages")
    }

    p.run.Finalize()
    if p.metrics != nil {
        p.metrics.OrphanPages.Set(float64(len(p.run.Orphans())))
    }

    stats.Duration = time.Since(start)
    return stats, nil
}

// enqueue walks services x locations in catalogue order and queues every pair
// that has a generated page. It returns the number of pairs without one.
func (p *Patcher) enqueue(ctx context.Context, jobs chan<- pageJob) (int, error) {
    c := p.engine.Catalog()
    skipped := 0

    for _, svc := range c.Services {
        present, err := htmlFiles(filepath.Join(p.pagesDir, "services", svc.Slug))
        if err != nil {
            return skipped, err
        }

        for _, loc := range c.Locations {
            if !present[loc.Slug] {
                skipped++
                continue
            }

            job := pageJob{
                path:     PagePath(p.pagesDir, svc.Slug, loc.Slug),
                service:  svc,
                location: loc,
            }
            select {
            case jobs <- job:
            case <-ctx.Done():
                return skipped, ctx.Err()
            }
        }
    }

    return skipped, nil
}

// htmlFiles lists the page stems in dir. A missing directory has none.
func htmlFiles(dir string) (map[string]bool, error) {
    entries, err := os.ReadDir(dir)
    if os.IsNotExist(err) {
        return nil, nil
    }
    if err != nil {
        return nil, errors.Wrapf(err, "failed to list %s", dir)
    }

    files := make(map[string]bool, len(entries))
    for _, entry := range entries {
        name := entry.Name()
        if entry.IsDir() || !strings.HasSuffix(name, ".html") {
            continue
        }
        files[strings.TrimSuffix(name, ".html")] = true
    }
    return files, nil
}

func (p *Patcher) worker(ctx context.Context, jobs <-chan pageJob, results chan<- pageResult) error {
    for job := range jobs {
        if ctx.Err() != nil {
            return ctx.Err()
        }

        result := p.patchPage(job)
        select {
        case results <- result:
        case <-ctx.Done():
            return ctx.Err()
        }
    }
    return nil
}

func (p *Patcher) patchPage(job pageJob) pageResult {
    plan := p.engine.PlanPage(job.service, job.location)
    result := pageResult{plan: plan, path: job.path}

    page, err := os.ReadFile(job.path)
    if err != nil {
        result.err = errors.Wrapf(err, "failed to read %s", job.path)
        return result
    }

    content := htmlpatch.ContentFromSections(plan.Kept, job.service.Name, job.location.Name, plan.AllowServicesGrid)
    out, filled, err := htmlpatch.Patch(page, content)
    if err != nil {
        result.err = errors.Wrapf(err, "failed to patch %s", job.path)
        return result
    }

    if len(filled) > 0 {
        if err := os.WriteFile(job.path, out, 0o644); err != nil {
            result.err = errors.Wrapf(err, "failed to write %s", job.path)
            return result
        }
    }

    p.run.Record(plan.URL, plan.PageValue, plan.PageDepth, plan.Outgoing())

    result.filled = filled
    result.size = int64(len(out))
    return result
}

func (p *Patcher) collect(stats *models.PatchStats, result pageResult) {
    if result.err != nil {
        stats.Errors++
        failed := stats.Errors
        p.errorLog.Do(func() {
            slog.Error("page patch failed", "path", result.path, "error", result.err, "failed", failed)
        })
        return
    }

    if len(result.filled) == 0 {
        stats.PagesUnchanged++
        slog.Debug("page already patched", "url", result.plan.URL)
    } else {
        stats.PagesPatched++
        if p.metrics != nil {
            p.metrics.PagesPatched.Inc()
        }
    }
    stats.TotalSize += result.size

    if p.metrics != nil {
        p.metrics.RecordPage(result.plan.Kept, result.plan.Pruned())
    }

    processed := stats.PagesPatched + stats.PagesUnchanged
    if progressDue(processed) {
        slog.Info("patching pages", "processed", processed)
    }
}

func progressDue(processed int) bool {
    return processed > 0 && processed%ProgressEvery == 0
}
